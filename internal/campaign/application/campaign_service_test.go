package application

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/campaign/domain"
	"github.com/terravest/platform/internal/shared/query"
	"github.com/terravest/platform/tests/mocks"
)

func newCampaignFixture() (*CampaignService, *mocks.InMemoryCampaignRepo, *mocks.FakeSiblingServices, *mocks.DummyPublisher) {
	repo := mocks.NewInMemoryCampaignRepo()
	siblings := mocks.NewFakeSiblingServices()
	events := &mocks.DummyPublisher{}
	service := NewCampaignService(repo, siblings, siblings, siblings, nil, events, nil, zap.NewNop())
	return service, repo, siblings, events
}

func TestCreateCampaign_Success(t *testing.T) {
	service, repo, siblings, events := newCampaignFixture()
	siblings.Offerings["off-1"] = map[string]interface{}{"offering_id": "off-1"}

	campaign, err := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID:  "off-1",
		Name:        "Spring Farmland Drive",
		Webinars:    []string{"web-1"},
		Newsletters: []string{"nl-1"},
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, campaign.CampaignID)
	assert.Equal(t, "Spring Farmland Drive", campaign.Name)
	assert.Contains(t, repo.Campaigns, campaign.CampaignID)

	assert.Len(t, events.Events, 1)
	assert.Equal(t, "campaign.created", events.Events[0].Type)
	assert.Equal(t, campaign.CampaignID, events.Events[0].EntityID)
}

func TestCreateCampaign_MissingOfferingDoesNotAbort(t *testing.T) {
	service, repo, _, _ := newCampaignFixture()

	campaign, err := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "ghost",
		Name:       "Orphan Campaign",
	})
	assert.NoError(t, err)
	assert.Contains(t, repo.Campaigns, campaign.CampaignID)
}

func TestModifyCampaign_PartialUpdate(t *testing.T) {
	service, _, _, events := newCampaignFixture()
	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "off-1",
		Name:       "Old Name",
	})

	name := "New Name"
	updated, err := service.ModifyCampaign(context.Background(), campaign.CampaignID, CampaignUpdate{Name: &name})
	assert.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "off-1", updated.OfferingID)

	assert.Equal(t, "campaign.updated", events.Events[len(events.Events)-1].Type)
}

func TestModifyCampaign_NotFound(t *testing.T) {
	service, _, _, _ := newCampaignFixture()
	name := "whatever"
	_, err := service.ModifyCampaign(context.Background(), "missing", CampaignUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
}

func TestFindCampaignByID_ConnectsSiblingData(t *testing.T) {
	service, _, siblings, _ := newCampaignFixture()
	siblings.Offerings["off-1"] = map[string]interface{}{
		"offering_id": "off-1",
		"Listing":     map[string]interface{}{"listing_id": "lst-1"},
	}
	siblings.Listings["lst-1"] = map[string]interface{}{"listing_id": "lst-1", "name": "Iowa Farm"}
	siblings.Files["pic-1"] = map[string]interface{}{"name": "hero.jpg", "content_url": "https://cdn/hero.jpg"}

	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID:  "off-1",
		Name:        "Iowa Drive",
		MainPicture: "pic-1",
	})

	connected, err := service.FindCampaignByID(context.Background(), "Bearer t", campaign.CampaignID)
	assert.NoError(t, err)
	assert.Equal(t, campaign.CampaignID, connected.Campaign.CampaignID)
	assert.Equal(t, "off-1", connected.Offering["offering_id"])
	assert.Equal(t, "Iowa Farm", connected.Listing["name"])
	assert.Equal(t, "https://cdn/hero.jpg", connected.MainPicture["content_url"])
}

func TestFindCampaignByID_MissingOfferingAborts(t *testing.T) {
	service, _, _, _ := newCampaignFixture()
	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "gone",
		Name:       "Broken",
	})

	_, err := service.FindCampaignByID(context.Background(), "Bearer t", campaign.CampaignID)
	assert.ErrorIs(t, err, domain.ErrNoOfferingData)
}

func TestFindCampaignByID_MissingListingAborts(t *testing.T) {
	service, _, siblings, _ := newCampaignFixture()
	siblings.Offerings["off-1"] = map[string]interface{}{
		"offering_id": "off-1",
		"Listing":     map[string]interface{}{"listing_id": "gone"},
	}
	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "off-1",
		Name:       "Broken",
	})

	_, err := service.FindCampaignByID(context.Background(), "Bearer t", campaign.CampaignID)
	assert.ErrorIs(t, err, domain.ErrNoListingData)
}

func TestDeleteCampaign_SoftDelete(t *testing.T) {
	service, repo, _, events := newCampaignFixture()
	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "off-1",
		Name:       "Short Lived",
	})

	deleted, err := service.DeleteCampaign(context.Background(), campaign.CampaignID)
	assert.NoError(t, err)
	assert.True(t, deleted.IsDeleted)

	_, err = repo.GetByID(context.Background(), campaign.CampaignID)
	assert.ErrorIs(t, err, domain.ErrCampaignNotFound)
	assert.Equal(t, "campaign.deleted", events.Events[len(events.Events)-1].Type)
}

func TestQueryCampaigns_PaginationMeta(t *testing.T) {
	service, _, _, _ := newCampaignFixture()
	for i := 0; i < 12; i++ {
		_, _ = service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
			OfferingID: "off-1",
			Name:       fmt.Sprintf("Campaign %d", i),
		})
	}

	page, err := service.QueryCampaigns(context.Background(), query.Options{Page: 2, Limit: 5})
	assert.NoError(t, err)
	assert.Len(t, page.Campaigns, 5)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, 3, page.Pages)
}

func TestQueryCampaigns_EmptyResult(t *testing.T) {
	service, _, _, _ := newCampaignFixture()

	page, err := service.QueryCampaigns(context.Background(), query.Options{Page: 1, Limit: 10})
	assert.NoError(t, err)
	assert.Empty(t, page.Campaigns)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 0, page.Pages)
}

func TestSearchCampaigns_MetaOmitsLimit(t *testing.T) {
	service, _, _, _ := newCampaignFixture()
	for i := 0; i < 7; i++ {
		_, _ = service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
			OfferingID: "off-1",
			Name:       fmt.Sprintf("Campaign %d", i),
		})
	}

	page, err := service.SearchCampaigns(context.Background(), query.SearchOptions{Page: 1, Limit: 5})
	assert.NoError(t, err)
	assert.Len(t, page.Campaigns, 5)
	assert.Equal(t, int64(7), page.Total)
	assert.Equal(t, 2, page.Pages)
}

func TestUploadMedia_StoresFileAndPointsMainPicture(t *testing.T) {
	service, _, siblings, _ := newCampaignFixture()
	siblings.Offerings["off-1"] = map[string]interface{}{
		"offering_id": "off-1",
		"Listing":     map[string]interface{}{"listing_id": "lst-1", "dataroom_id": "room-9"},
	}
	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "off-1",
		Name:       "Media Campaign",
	})

	updated, err := service.UploadMedia(context.Background(), "Bearer t", "user-1",
		campaign.CampaignID, "hero.png", strings.NewReader("png-bytes"))
	assert.NoError(t, err)
	assert.Equal(t, "file-1", updated.MainPicture)

	assert.Len(t, siblings.Uploads, 1)
	assert.Equal(t, "room-9", siblings.Uploads[0].DataroomID)
	assert.Equal(t, "user-1", siblings.Uploads[0].UserID)
}

func TestUploadMedia_MissingDataroomAborts(t *testing.T) {
	service, _, siblings, _ := newCampaignFixture()
	siblings.Offerings["off-1"] = map[string]interface{}{"offering_id": "off-1"}
	campaign, _ := service.CreateCampaign(context.Background(), "Bearer t", CreateCampaignInput{
		OfferingID: "off-1",
		Name:       "No Room",
	})

	_, err := service.UploadMedia(context.Background(), "Bearer t", "user-1",
		campaign.CampaignID, "hero.png", strings.NewReader("png-bytes"))
	assert.ErrorIs(t, err, domain.ErrNoListingData)
	assert.Empty(t, siblings.Uploads)
}
