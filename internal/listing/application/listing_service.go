package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/listing/domain"
	"github.com/terravest/platform/internal/shared/infra/analytics"
	"github.com/terravest/platform/internal/shared/infra/events"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// ListingService implements the listing use cases.
type ListingService struct {
	repo      domain.ListingRepository
	datarooms domain.DataRoomGateway
	sync      domain.ListingSyncGateway
	events    events.Publisher
	analytics analytics.Recorder
	log       *zap.Logger
}

func NewListingService(
	repo domain.ListingRepository,
	datarooms domain.DataRoomGateway,
	sync domain.ListingSyncGateway,
	pub events.Publisher,
	rec analytics.Recorder,
	log *zap.Logger,
) *ListingService {
	return &ListingService{
		repo:      repo,
		datarooms: datarooms,
		sync:      sync,
		events:    pub,
		analytics: rec,
		log:       log,
	}
}

// CreateListingInput is the creation payload, schema-validated at the
// transport layer.
type CreateListingInput struct {
	Name                string                     `json:"name"`
	Address             domain.Address             `json:"address"`
	PropertyDescription string                     `json:"property_description"`
	PropertyHighlights  domain.PropertyHighlights  `json:"property_highlights"`
	DaysOnMarket        int                        `json:"days_on_market"`
	Type                string                     `json:"type"`
	BuiltOn             *time.Time                 `json:"built_on"`
	RenovatedOn         []time.Time                `json:"renovated_on"`
	ListingAgent        domain.ListingAgent        `json:"listing_agent"`
	DataroomID          string                     `json:"dataroom_id"`
	Workflows           map[string]interface{}     `json:"workflows"`
	Images              []string                   `json:"images"`
	Videos              []string                   `json:"videos"`
	Maps                []domain.MapData           `json:"maps"`
	PropertyDetails     *domain.PropertyDetails    `json:"property_details"`
	SalesAndTax         *domain.SalesAndTax        `json:"sales_and_tax"`
	PublicFacts         map[string]interface{}     `json:"public_facts"`
	Schools             map[string]interface{}     `json:"schools"`
	ListingSource       string                     `json:"listing_source"`
	Status              string                     `json:"status"`
}

func (in CreateListingInput) price() *domain.Price {
	l := domain.Listing{PropertyDetails: in.PropertyDetails}
	return l.CurrentPrice()
}

// ListingPage is the query engine result.
type ListingPage struct {
	Listings []*domain.Listing `json:"listings"`
	query.PageMeta
}

// ListingSearchPage is the search engine result; it carries no limit field.
type ListingSearchPage struct {
	Listings []*domain.Listing `json:"listings"`
	query.SearchMeta
}

// BrowsePage is the catalog view result.
type BrowsePage struct {
	Data        []*domain.Listing `json:"data"`
	TotalItems  int64             `json:"totalItems"`
	TotalPages  int               `json:"totalPages"`
	CurrentPage int               `json:"currentPage"`
}

// CreateListing persists a new listing and provisions its data room. When a
// listing with the same name and house number already exists it is not
// duplicated; instead a drifted price or status is pushed back through the
// public listing API and ErrListingExists is returned.
func (s *ListingService) CreateListing(ctx context.Context, auth, userID string, in CreateListingInput) (*domain.Listing, error) {
	existing, err := s.repo.FindDuplicate(ctx, in.Name, in.Address.HouseNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.reconcileDuplicate(ctx, auth, existing, in)
		return nil, domain.ErrListingExists
	}

	now := time.Now().UTC()
	listing := &domain.Listing{
		ListingID:           uuid.NewString(),
		Name:                in.Name,
		Address:             in.Address,
		PropertyDescription: in.PropertyDescription,
		PropertyHighlights:  in.PropertyHighlights,
		DaysOnMarket:        in.DaysOnMarket,
		Type:                in.Type,
		BuiltOn:             in.BuiltOn,
		RenovatedOn:         in.RenovatedOn,
		ListingAgent:        in.ListingAgent,
		DataroomID:          in.DataroomID,
		Workflows:           in.Workflows,
		Images:              in.Images,
		Videos:              in.Videos,
		Maps:                in.Maps,
		PropertyDetails:     in.PropertyDetails,
		SalesAndTax:         in.SalesAndTax,
		PublicFacts:         in.PublicFacts,
		Schools:             in.Schools,
		ListingSource:       in.ListingSource,
		Status:              in.Status,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	s.provisionDataRoom(ctx, auth, userID, listing)

	if err := s.repo.Create(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(ctx, "listing.created", listing.ListingID, listing)
	return listing, nil
}

// reconcileDuplicate pushes the incoming price and status onto the stored
// listing through the public API. Failures are logged and swallowed.
func (s *ListingService) reconcileDuplicate(ctx context.Context, auth string, existing *domain.Listing, in CreateListingInput) {
	if s.sync == nil {
		return
	}
	oldPrice := existing.CurrentPrice()
	newPrice := in.price()

	drifted := existing.Status != in.Status ||
		(oldPrice != nil && newPrice != nil && oldPrice.Price != newPrice.Price)
	if !drifted || newPrice == nil || newPrice.Price == 0 {
		return
	}

	taxInfo := map[string]interface{}{}
	if existing.PropertyDetails != nil && existing.PropertyDetails.Financial != nil {
		if t, ok := existing.PropertyDetails.Financial["TaxInformation"]; ok {
			taxInfo, _ = t.(map[string]interface{})
		}
	}
	payload := map[string]interface{}{
		"status": in.Status,
		"property_details": map[string]interface{}{
			"financial": map[string]interface{}{
				"TaxInformation": taxInfo,
				"price": map[string]interface{}{
					"currency": "USD",
					"price":    newPrice.Price,
				},
			},
		},
	}
	if err := s.sync.UpdateListing(ctx, auth, existing.ListingID, payload); err != nil {
		s.log.Warn("could not reconcile duplicate listing",
			zap.String("listing_id", existing.ListingID), zap.Error(err))
	}
}

// provisionDataRoom creates the room and its default cabinet. Failures leave
// the dataroom_id as provided in the payload.
func (s *ListingService) provisionDataRoom(ctx context.Context, auth, userID string, listing *domain.Listing) {
	if s.datarooms == nil {
		return
	}
	name := utils.DataRoomName(listing.Name)
	ari := "ari:drs:us:client:terravest:dataroom:" + name

	roomID, err := s.datarooms.CreateDataRoom(ctx, auth, name,
		"Data room for the listing "+listing.Name, ari, userID)
	if err != nil {
		s.log.Warn("could not create data room", zap.String("listing", listing.Name), zap.Error(err))
		return
	}
	listing.DataroomID = roomID

	if err := s.datarooms.CreateCabinet(ctx, auth, roomID, name,
		"Cabinet for the listing "+listing.Name, ari, userID); err != nil {
		s.log.Warn("could not create cabinet", zap.String("dataroom_id", roomID), zap.Error(err))
	}
}

// ModifyListing applies a partial update over the stored document. Nested
// sections merge field by field; absent fields keep their stored values.
func (s *ListingService) ModifyListing(ctx context.Context, id string, updates ListingUpdate) (*domain.Listing, error) {
	if err := updates.Validate(); err != nil {
		return nil, err
	}
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.applyTo(listing)
	listing.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	s.publish(ctx, "listing.updated", listing.ListingID, listing)
	return listing, nil
}

// BrowseListings serves the public catalog: named sort presets and free-text
// search across name and address.
func (s *ListingService) BrowseListings(ctx context.Context, opts domain.BrowseOptions) (*BrowsePage, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.PageSize < 1 {
		opts.PageSize = 10
	}
	items, total, err := s.repo.Browse(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &BrowsePage{
		Data:        items,
		TotalItems:  total,
		TotalPages:  query.Pages(total, opts.PageSize),
		CurrentPage: opts.Page,
	}, nil
}

func (s *ListingService) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteListing removes the listing for good and tears down its data room.
// The data-room deletion is best effort.
func (s *ListingService) DeleteListing(ctx context.Context, auth, id string) (*domain.Listing, error) {
	listing, err := s.repo.HardDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	if s.datarooms != nil && listing.DataroomID != "" {
		if err := s.datarooms.DeleteDataRoom(ctx, auth, listing.DataroomID); err != nil {
			s.log.Warn("could not delete data room",
				zap.String("dataroom_id", listing.DataroomID), zap.Error(err))
		}
	}
	s.publish(ctx, "listing.deleted", id, nil)
	return listing, nil
}

// QueryListings runs the query engine over the listing collection.
func (s *ListingService) QueryListings(ctx context.Context, opts query.Options) (*ListingPage, error) {
	started := time.Now()
	items, total, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("query", analytics.FilterKeys(opts.Filters), total, started)

	return &ListingPage{
		Listings: items,
		PageMeta: query.PageMeta{
			Total: total,
			Page:  opts.Page,
			Limit: opts.Limit,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// SearchListings runs the search engine over the listing collection.
func (s *ListingService) SearchListings(ctx context.Context, opts query.SearchOptions) (*ListingSearchPage, error) {
	started := time.Now()
	items, total, err := s.repo.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("search", analytics.FilterKeys(opts.Filters), total, started)

	return &ListingSearchPage{
		Listings: items,
		SearchMeta: query.SearchMeta{
			Total: total,
			Page:  opts.Page,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// MediaUpload is a single file in an upload request.
type MediaUpload struct {
	FileName string
	Data     io.Reader
}

// UploadMedia attaches media to a listing. Images, videos and documents go
// through the data room; map points are validated and embedded directly.
func (s *ListingService) UploadMedia(ctx context.Context, auth, userID, id, mediaType string, files []MediaUpload, maps []domain.MapData) (*domain.Listing, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch mediaType {
	case "image", "video", "document":
		if len(files) == 0 {
			return nil, domain.ErrNoMediaFile
		}
		for _, f := range files {
			fileID, err := s.uploadToDataRoom(ctx, auth, userID, listing, f)
			if err != nil {
				return nil, err
			}
			switch mediaType {
			case "image":
				listing.Images = append(listing.Images, fileID)
			case "video":
				listing.Videos = append(listing.Videos, fileID)
			case "document":
				listing.Documents = append(listing.Documents, fileID)
			}
		}
	case "map":
		if len(maps) == 0 {
			return nil, domain.ErrNoMediaFile
		}
		for _, m := range maps {
			if !m.Valid() {
				return nil, domain.ErrInvalidMap
			}
			listing.Maps = append(listing.Maps, m)
		}
	default:
		return nil, fmt.Errorf("unsupported media type %q", mediaType)
	}

	listing.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *ListingService) uploadToDataRoom(ctx context.Context, auth, userID string, listing *domain.Listing, f MediaUpload) (string, error) {
	ari := "ari:drs:us:client:terravest:dataroom:" + utils.DataRoomName(listing.Name)
	return s.datarooms.UploadFile(ctx, auth, f.FileName, f.Data, userID,
		"Media for the listing: "+listing.Name, ari, listing.DataroomID)
}

// MediaFile is a resolved media entry: display name plus content URL.
type MediaFile struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MediaMeta paginates the image gallery; videos and maps come back whole.
type MediaMeta struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalItems  int `json:"totalItems"`
}

// MediaView is the resolved media of a listing.
type MediaView struct {
	Images     []MediaFile      `json:"images"`
	Videos     []MediaFile      `json:"videos"`
	Maps       []domain.MapData `json:"maps"`
	ImagesMeta MediaMeta        `json:"imagesMeta"`
}

// GetMedia resolves the listing's stored file ids into names and content
// URLs. Images are paginated; videos and maps are returned in full.
func (s *ListingService) GetMedia(ctx context.Context, auth, id string, page, limit int) (*MediaView, error) {
	listing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	view := &MediaView{
		Images: []MediaFile{},
		Videos: []MediaFile{},
		Maps:   listing.Maps,
		ImagesMeta: MediaMeta{
			CurrentPage: page,
			TotalPages:  query.Pages(int64(len(listing.Images)), limit),
			TotalItems:  len(listing.Images),
		},
	}
	if view.Maps == nil {
		view.Maps = []domain.MapData{}
	}

	start := (page - 1) * limit
	end := start + limit
	if end > len(listing.Images) {
		end = len(listing.Images)
	}
	for i := start; i < end; i++ {
		file, err := s.resolveFile(ctx, auth, listing.Images[i])
		if err != nil {
			return nil, err
		}
		view.Images = append(view.Images, file)
	}
	for _, fileID := range listing.Videos {
		file, err := s.resolveFile(ctx, auth, fileID)
		if err != nil {
			return nil, err
		}
		view.Videos = append(view.Videos, file)
	}
	return view, nil
}

func (s *ListingService) resolveFile(ctx context.Context, auth, fileID string) (MediaFile, error) {
	data, err := s.datarooms.GetFile(ctx, auth, fileID)
	if err != nil {
		return MediaFile{}, fmt.Errorf("fetch file %s: %w", fileID, err)
	}
	return MediaFile{
		Name: utils.StringField(data, "name"),
		URL:  utils.StringField(data, "content_url"),
	}, nil
}

func (s *ListingService) publish(ctx context.Context, eventType, id string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New("listing", eventType, id, payload)); err != nil {
		s.log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *ListingService) record(op string, keys []string, total int64, started time.Time) {
	if s.analytics == nil {
		return
	}
	err := s.analytics.Record(analytics.ReadEvent{
		Entity:     "listing",
		Op:         op,
		FilterKeys: keys,
		Total:      total,
		Duration:   time.Since(started),
		At:         time.Now().UTC(),
	})
	if err != nil {
		s.log.Debug("analytics record failed", zap.Error(err))
	}
}
