package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/offering/domain"
	"github.com/terravest/platform/internal/shared/infra/analytics"
	"github.com/terravest/platform/internal/shared/infra/cache"
	"github.com/terravest/platform/internal/shared/infra/events"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// OfferingService implements the offering use cases.
type OfferingService struct {
	repo          domain.OfferingRepository
	subscriptions domain.SubscriptionRepository
	listings      domain.ListingGateway
	files         domain.FileGateway
	cache         cache.Cache
	events        events.Publisher
	analytics     analytics.Recorder
	log           *zap.Logger
}

func NewOfferingService(
	repo domain.OfferingRepository,
	subs domain.SubscriptionRepository,
	listings domain.ListingGateway,
	files domain.FileGateway,
	c cache.Cache,
	pub events.Publisher,
	rec analytics.Recorder,
	log *zap.Logger,
) *OfferingService {
	return &OfferingService{
		repo:          repo,
		subscriptions: subs,
		listings:      listings,
		files:         files,
		cache:         c,
		events:        pub,
		analytics:     rec,
		log:           log,
	}
}

// CreateOfferingInput is the creation payload, schema-validated at the
// transport layer.
type CreateOfferingInput struct {
	ListingID          string                     `json:"listing_id"`
	Name               string                     `json:"name"`
	Workflows          map[string]interface{}     `json:"workflows"`
	ValueDriver        map[string]interface{}     `json:"value_driver"`
	ExpectedReturns    *domain.ExpectedReturns    `json:"expected_returns"`
	Details            *domain.Details            `json:"details"`
	FinancialDetails   *domain.FinancialDetails   `json:"financial_details"`
	InvestmentOverview *domain.InvestmentOverview `json:"investment_overview"`
	Documents          *domain.Documents          `json:"documents"`
	Status             string                     `json:"status"`
}

// ConnectedOffering pairs the offering with its listing for the read path.
type ConnectedOffering struct {
	Offering *domain.Offering       `json:"Offering"`
	Listing  map[string]interface{} `json:"Listing,omitempty"`
}

// OfferingWithSubscription decorates an offering with the calling user's
// subscription state.
type OfferingWithSubscription struct {
	*domain.Offering
	IsUserSubscribed bool    `json:"is_user_subscribed"`
	SubscriptionID   *string `json:"subscription_id"`
}

// OfferingPage is the query engine result.
type OfferingPage struct {
	Offerings []*domain.Offering `json:"offerings"`
	query.PageMeta
}

// OfferingSearchPage is the search engine result; it carries no limit field.
type OfferingSearchPage struct {
	Offerings []*domain.Offering `json:"offerings"`
	query.SearchMeta
}

// CreateOffering persists a new offering. The backing listing must be
// reachable; a missing listing aborts creation.
func (s *OfferingService) CreateOffering(ctx context.Context, auth string, in CreateOfferingInput) (*domain.Offering, error) {
	listing, err := s.listings.GetListing(ctx, auth, in.ListingID)
	if err != nil {
		s.log.Warn("could not fetch listing for new offering",
			zap.String("listing_id", in.ListingID), zap.Error(err))
	}
	if listing == nil {
		return nil, domain.ErrNoListingData
	}

	now := time.Now().UTC()
	offering := &domain.Offering{
		OfferingID:         uuid.NewString(),
		ListingID:          in.ListingID,
		Name:               in.Name,
		Workflows:          in.Workflows,
		ValueDriver:        in.ValueDriver,
		ExpectedReturns:    in.ExpectedReturns,
		Details:            in.Details,
		FinancialDetails:   in.FinancialDetails,
		InvestmentOverview: in.InvestmentOverview,
		Documents:          in.Documents,
		Status:             in.Status,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if offering.Status == "" {
		offering.Status = domain.StatusDraft
	}

	if err := s.repo.Create(ctx, offering); err != nil {
		return nil, err
	}
	s.publish(ctx, "offering.created", offering.OfferingID, offering)
	s.cacheSet(offering)
	return offering, nil
}

// FindOfferingByID returns the offering connected with its listing. The id
// is matched against offering_id first, then listing_id. Document file ids
// are swapped for content URLs where the data room resolves them.
func (s *OfferingService) FindOfferingByID(ctx context.Context, auth, id string) (*ConnectedOffering, error) {
	offering, err := s.getOffering(ctx, id)
	if err != nil {
		return nil, err
	}

	s.resolveDocuments(ctx, auth, offering)

	connected := &ConnectedOffering{Offering: offering}
	listing, err := s.listings.GetListing(ctx, auth, offering.ListingID)
	if err != nil {
		s.log.Warn("error fetching listing", zap.String("listing_id", offering.ListingID), zap.Error(err))
	}
	connected.Listing = listing
	return connected, nil
}

// resolveDocuments replaces stored file ids with content URLs. Files the
// data room cannot resolve keep their ids.
func (s *OfferingService) resolveDocuments(ctx context.Context, auth string, offering *domain.Offering) {
	docs := offering.Documents
	if docs == nil {
		return
	}
	if docs.InvestorMemo != "" {
		if url, ok := s.fileURL(ctx, auth, docs.InvestorMemo); ok {
			docs.InvestorMemo = url
		}
	}
	for i, id := range docs.InvestorDocuments {
		if url, ok := s.fileURL(ctx, auth, id); ok {
			docs.InvestorDocuments[i] = url
		}
	}
	for i, id := range docs.ComplianceAudits {
		if url, ok := s.fileURL(ctx, auth, id); ok {
			docs.ComplianceAudits[i] = url
		}
	}
}

func (s *OfferingService) fileURL(ctx context.Context, auth, fileID string) (string, bool) {
	data, err := s.files.GetFile(ctx, auth, fileID)
	if err != nil {
		s.log.Warn("error fetching document file", zap.String("file_id", fileID), zap.Error(err))
		return "", false
	}
	url := utils.StringField(data, "content_url")
	return url, url != ""
}

// GetAllOfferings lists every non-deleted offering decorated with the
// calling user's subscription state.
func (s *OfferingService) GetAllOfferings(ctx context.Context, userID string) ([]*OfferingWithSubscription, error) {
	offerings, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]*OfferingWithSubscription, 0, len(offerings))
	for _, offering := range offerings {
		decorated := &OfferingWithSubscription{Offering: offering}
		sub, err := s.subscriptions.FindActive(ctx, offering.OfferingID, userID)
		if err != nil {
			return nil, err
		}
		if sub != nil {
			decorated.IsUserSubscribed = true
			decorated.SubscriptionID = &sub.SubscriptionID
		}
		out = append(out, decorated)
	}
	return out, nil
}

// ModifyOffering applies a partial update over the stored document.
func (s *OfferingService) ModifyOffering(ctx context.Context, id string, updates OfferingUpdate) (*domain.Offering, error) {
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates.applyTo(offering)
	offering.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, offering); err != nil {
		return nil, err
	}
	s.publish(ctx, "offering.updated", offering.OfferingID, offering)
	s.cacheSet(offering)
	return offering, nil
}

// DeleteOffering soft-deletes an offering.
func (s *OfferingService) DeleteOffering(ctx context.Context, id string) (*domain.Offering, error) {
	offering, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "offering.deleted", id, nil)
	s.cacheDelete(id)
	return offering, nil
}

// QueryOfferings runs the query engine over the offering collection.
func (s *OfferingService) QueryOfferings(ctx context.Context, opts query.Options) (*OfferingPage, error) {
	started := time.Now()
	items, total, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("query", analytics.FilterKeys(opts.Filters), total, started)

	return &OfferingPage{
		Offerings: items,
		PageMeta: query.PageMeta{
			Total: total,
			Page:  opts.Page,
			Limit: opts.Limit,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// SearchOfferings runs the search engine over the offering collection.
func (s *OfferingService) SearchOfferings(ctx context.Context, opts query.SearchOptions) (*OfferingSearchPage, error) {
	started := time.Now()
	items, total, err := s.repo.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("search", analytics.FilterKeys(opts.Filters), total, started)

	return &OfferingSearchPage{
		Offerings: items,
		SearchMeta: query.SearchMeta{
			Total: total,
			Page:  opts.Page,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// DocumentUploads groups incoming document files by their slot.
type DocumentUploads struct {
	InvestorMemo      *Upload
	InvestorDocuments []Upload
	ComplianceAudits  []Upload
}

func (d DocumentUploads) empty() bool {
	return d.InvestorMemo == nil && len(d.InvestorDocuments) == 0 && len(d.ComplianceAudits) == 0
}

// UpdateDocuments uploads offering documents into the listing's data room
// and stores the returned file ids. The backing listing must be reachable.
func (s *OfferingService) UpdateDocuments(ctx context.Context, auth, userID, id string, uploads DocumentUploads) (*domain.Offering, error) {
	if uploads.empty() {
		return nil, domain.ErrNoDocumentFile
	}
	offering, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	listing, err := s.listings.GetListing(ctx, auth, offering.ListingID)
	if err != nil || listing == nil {
		s.log.Warn("could not fetch listing for document upload",
			zap.String("listing_id", offering.ListingID), zap.Error(err))
		return nil, domain.ErrNoListingData
	}
	dataroomID := utils.StringField(listing, "dataroom_id")
	ari := "ari:drs:us:client:terravest:dataroom:" + utils.DataRoomName(utils.StringField(listing, "name"))

	docs := offering.Documents
	if docs == nil {
		docs = &domain.Documents{}
		offering.Documents = docs
	}

	store := func(u Upload) (string, error) {
		return s.files.UploadFile(ctx, auth, u.FileName, u.Data, userID,
			"Document for the offering: "+offering.Name, ari, dataroomID)
	}

	if uploads.InvestorMemo != nil {
		fileID, err := store(*uploads.InvestorMemo)
		if err != nil {
			return nil, err
		}
		docs.InvestorMemo = fileID
	}
	for _, u := range uploads.InvestorDocuments {
		fileID, err := store(u)
		if err != nil {
			return nil, err
		}
		docs.InvestorDocuments = append(docs.InvestorDocuments, fileID)
	}
	for _, u := range uploads.ComplianceAudits {
		fileID, err := store(u)
		if err != nil {
			return nil, err
		}
		docs.ComplianceAudits = append(docs.ComplianceAudits, fileID)
	}

	offering.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, offering); err != nil {
		return nil, err
	}
	s.cacheSet(offering)
	return offering, nil
}

// GetCrops returns the configured row-crop choices.
func (s *OfferingService) GetCrops(ctx context.Context) ([]string, error) {
	return s.repo.Crops(ctx)
}

func (s *OfferingService) getOffering(ctx context.Context, id string) (*domain.Offering, error) {
	if s.cache != nil {
		var cached domain.Offering
		if ok, _ := s.cache.Get(ctx, cache.Key("offering", id), &cached); ok {
			return &cached, nil
		}
	}
	offering, err := s.repo.GetByID(ctx, id)
	if err == nil {
		s.cacheSet(offering)
		return offering, nil
	}
	// An offering can also be addressed through its listing.
	offering, lerr := s.repo.GetByListingID(ctx, id)
	if lerr != nil {
		return nil, err
	}
	return offering, nil
}

func (s *OfferingService) cacheSet(offering *domain.Offering) {
	if s.cache == nil {
		return
	}
	// The read path rewrites Documents in place after scheduling the cache
	// write, so the goroutine gets its own copy with the stored file ids.
	snapshot := offering.Clone()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Set(ctx, cache.Key("offering", snapshot.OfferingID), snapshot, 0)
	}()
}

func (s *OfferingService) cacheDelete(id string) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Delete(ctx, cache.Key("offering", id))
	}()
}

func (s *OfferingService) publish(ctx context.Context, eventType, id string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New("offering", eventType, id, payload)); err != nil {
		s.log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *OfferingService) record(op string, keys []string, total int64, started time.Time) {
	if s.analytics == nil {
		return
	}
	err := s.analytics.Record(analytics.ReadEvent{
		Entity:     "offering",
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
