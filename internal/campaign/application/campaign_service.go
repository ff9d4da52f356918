package application

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/campaign/domain"
	"github.com/terravest/platform/internal/shared/infra/analytics"
	"github.com/terravest/platform/internal/shared/infra/cache"
	"github.com/terravest/platform/internal/shared/infra/events"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/pkg/utils"
)

// CampaignService implements the campaign use cases.
type CampaignService struct {
	repo      domain.CampaignRepository
	offerings domain.OfferingGateway
	listings  domain.ListingGateway
	files     domain.FileGateway
	cache     cache.Cache
	events    events.Publisher
	analytics analytics.Recorder
	log       *zap.Logger
}

func NewCampaignService(
	repo domain.CampaignRepository,
	offerings domain.OfferingGateway,
	listings domain.ListingGateway,
	files domain.FileGateway,
	c cache.Cache,
	pub events.Publisher,
	rec analytics.Recorder,
	log *zap.Logger,
) *CampaignService {
	return &CampaignService{
		repo:      repo,
		offerings: offerings,
		listings:  listings,
		files:     files,
		cache:     c,
		events:    pub,
		analytics: rec,
		log:       log,
	}
}

// CreateCampaignInput is the creation payload, already schema-validated at
// the transport layer.
type CreateCampaignInput struct {
	OfferingID  string   `json:"offering_id"`
	Name        string   `json:"name"`
	MainPicture string   `json:"main_picture"`
	Webinars    []string `json:"webinars"`
	Newsletters []string `json:"newsletters"`
}

// CampaignUpdate carries the optional fields of a modification request.
type CampaignUpdate struct {
	OfferingID  *string   `json:"offering_id,omitempty"`
	Name        *string   `json:"name,omitempty"`
	MainPicture *string   `json:"main_picture,omitempty"`
	Webinars    *[]string `json:"webinars,omitempty"`
	Newsletters *[]string `json:"newsletters,omitempty"`
}

// ConnectedCampaign is a campaign enriched with its sibling-service data.
type ConnectedCampaign struct {
	Campaign    *domain.Campaign       `json:"campaign"`
	MainPicture map[string]interface{} `json:"main_picture_details,omitempty"`
	Offering    map[string]interface{} `json:"offering"`
	Listing     map[string]interface{} `json:"listing"`
}

// CampaignPage is the query engine result.
type CampaignPage struct {
	Campaigns []*domain.Campaign `json:"campaigns"`
	query.PageMeta
}

// CampaignSearchPage is the search engine result; it carries no limit field.
type CampaignSearchPage struct {
	Campaigns []*domain.Campaign `json:"campaigns"`
	query.SearchMeta
}

// CreateCampaign persists a new campaign. The offering lookup confirms the
// reference but its failure does not abort creation.
func (s *CampaignService) CreateCampaign(ctx context.Context, auth string, in CreateCampaignInput) (*domain.Campaign, error) {
	now := time.Now().UTC()
	campaign := &domain.Campaign{
		CampaignID:  uuid.NewString(),
		OfferingID:  in.OfferingID,
		Name:        in.Name,
		MainPicture: in.MainPicture,
		Webinars:    in.Webinars,
		Newsletters: in.Newsletters,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if offering, err := s.offerings.GetOffering(ctx, auth, in.OfferingID); err != nil || offering == nil {
		s.log.Warn("could not fetch offering for new campaign",
			zap.String("offering_id", in.OfferingID), zap.Error(err))
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.publish(ctx, "campaign.created", campaign.CampaignID, campaign)
	s.cacheSet(campaign)
	return campaign, nil
}

// ModifyCampaign applies a partial update over the stored document.
func (s *CampaignService) ModifyCampaign(ctx context.Context, id string, updates CampaignUpdate) (*domain.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if updates.OfferingID != nil {
		campaign.OfferingID = *updates.OfferingID
	}
	if updates.Name != nil {
		campaign.Name = *updates.Name
	}
	if updates.MainPicture != nil {
		campaign.MainPicture = *updates.MainPicture
	}
	if updates.Webinars != nil {
		campaign.Webinars = *updates.Webinars
	}
	if updates.Newsletters != nil {
		campaign.Newsletters = *updates.Newsletters
	}
	campaign.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	s.publish(ctx, "campaign.updated", campaign.CampaignID, campaign)
	s.cacheSet(campaign)
	return campaign, nil
}

// FindCampaignByID returns the campaign connected with its offering, the
// offering's listing and the main-picture file details. Missing offering or
// listing data aborts; a missing picture does not.
func (s *CampaignService) FindCampaignByID(ctx context.Context, auth, id string) (*ConnectedCampaign, error) {
	campaign, err := s.getCampaign(ctx, id)
	if err != nil {
		return nil, err
	}

	offering, err := s.offerings.GetOffering(ctx, auth, campaign.OfferingID)
	if err != nil {
		s.log.Warn("error fetching offering", zap.String("offering_id", campaign.OfferingID), zap.Error(err))
	}
	if offering == nil {
		return nil, domain.ErrNoOfferingData
	}

	listingID := utils.StringField(offering, "Listing", "listing_id")
	if listingID == "" {
		listingID = utils.StringField(offering, "listing_id")
	}
	listing, err := s.listings.GetListing(ctx, auth, listingID)
	if err != nil {
		s.log.Warn("error fetching listing", zap.String("listing_id", listingID), zap.Error(err))
	}
	if listing == nil {
		return nil, domain.ErrNoListingData
	}

	connected := &ConnectedCampaign{
		Campaign: campaign,
		Offering: offering,
		Listing:  listing,
	}

	if campaign.MainPicture != "" {
		file, err := s.files.GetFile(ctx, auth, campaign.MainPicture)
		if err != nil {
			s.log.Warn("error fetching main picture", zap.String("file_id", campaign.MainPicture), zap.Error(err))
		}
		connected.MainPicture = file
	}

	return connected, nil
}

// GetAllCampaigns lists every non-deleted campaign.
func (s *CampaignService) GetAllCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	return s.repo.ListActive(ctx)
}

// DeleteCampaign soft-deletes a campaign.
func (s *CampaignService) DeleteCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	campaign, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, "campaign.deleted", id, nil)
	s.cacheDelete(id)
	return campaign, nil
}

// QueryCampaigns runs the query engine over the campaign collection.
func (s *CampaignService) QueryCampaigns(ctx context.Context, opts query.Options) (*CampaignPage, error) {
	started := time.Now()
	items, total, err := s.repo.Query(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("query", analytics.FilterKeys(opts.Filters), total, started)

	return &CampaignPage{
		Campaigns: items,
		PageMeta: query.PageMeta{
			Total: total,
			Page:  opts.Page,
			Limit: opts.Limit,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// SearchCampaigns runs the search engine over the campaign collection.
func (s *CampaignService) SearchCampaigns(ctx context.Context, opts query.SearchOptions) (*CampaignSearchPage, error) {
	started := time.Now()
	items, total, err := s.repo.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	s.record("search", analytics.FilterKeys(opts.Filters), total, started)

	return &CampaignSearchPage{
		Campaigns: items,
		SearchMeta: query.SearchMeta{
			Total: total,
			Page:  opts.Page,
			Pages: query.Pages(total, opts.Limit),
		},
	}, nil
}

// UploadMedia stores a campaign image in the listing's data room and points
// main_picture at the stored file.
func (s *CampaignService) UploadMedia(ctx context.Context, auth, userID, id, fileName string, file io.Reader) (*domain.Campaign, error) {
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	offering, err := s.offerings.GetOffering(ctx, auth, campaign.OfferingID)
	if err != nil || offering == nil {
		s.log.Warn("error fetching offering for media upload", zap.Error(err))
		return nil, domain.ErrNoOfferingData
	}
	dataroomID := utils.StringField(offering, "Listing", "dataroom_id")
	if dataroomID == "" {
		return nil, domain.ErrNoListingData
	}

	ari := "ari:drs:us:client:terravest:dataroom:" + utils.DataRoomName(campaign.Name)
	fileID, err := s.files.UploadFile(ctx, auth, fileName, file, userID,
		"Image for the campaign: "+campaign.Name, ari, dataroomID)
	if err != nil {
		return nil, err
	}

	campaign.MainPicture = fileID
	campaign.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, campaign); err != nil {
		return nil, err
	}

	s.cacheSet(campaign)
	return campaign, nil
}

func (s *CampaignService) getCampaign(ctx context.Context, id string) (*domain.Campaign, error) {
	if s.cache != nil {
		var cached domain.Campaign
		if ok, _ := s.cache.Get(ctx, cache.Key("campaign", id), &cached); ok {
			return &cached, nil
		}
	}
	campaign, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheSet(campaign)
	return campaign, nil
}

func (s *CampaignService) cacheSet(campaign *domain.Campaign) {
	if s.cache == nil {
		return
	}
	go func(c domain.Campaign) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Set(ctx, cache.Key("campaign", c.CampaignID), &c, 0)
	}(*campaign)
}

func (s *CampaignService) cacheDelete(id string) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()
		_ = s.cache.Delete(ctx, cache.Key("campaign", id))
	}()
}

func (s *CampaignService) publish(ctx context.Context, eventType, id string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, events.New("campaign", eventType, id, payload)); err != nil {
		s.log.Warn("event publish failed", zap.String("type", eventType), zap.Error(err))
	}
}

func (s *CampaignService) record(op string, keys []string, total int64, started time.Time) {
	if s.analytics == nil {
		return
	}
	err := s.analytics.Record(analytics.ReadEvent{
		Entity:     "campaign",
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
