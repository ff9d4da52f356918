package application

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/terravest/platform/internal/listing/domain"
	"github.com/terravest/platform/tests/mocks"
)

func newListingFixture() (*ListingService, *mocks.InMemoryListingRepo, *mocks.FakeSiblingServices, *mocks.DummyPublisher) {
	repo := mocks.NewInMemoryListingRepo()
	siblings := mocks.NewFakeSiblingServices()
	events := &mocks.DummyPublisher{}
	service := NewListingService(repo, siblings, siblings, events, nil, zap.NewNop())
	return service, repo, siblings, events
}

func farmInput(name, houseNumber string, price float64) CreateListingInput {
	in := CreateListingInput{
		Name: name,
		Address: domain.Address{
			HouseNumber: houseNumber,
			Street:      "County Road 12",
			City:        "Ames",
			State:       "IA",
			Zip:         "50010",
		},
		Type:          "Farm",
		ListingSource: domain.SourceRealtor,
		Status:        domain.StatusSourced,
	}
	if price > 0 {
		in.PropertyDetails = &domain.PropertyDetails{
			Financial: map[string]interface{}{
				"price": map[string]interface{}{"currency": "USD", "price": price},
			},
		}
	}
	return in
}

func TestCreateListing_ProvisionsDataRoom(t *testing.T) {
	service, repo, siblings, events := newListingFixture()

	listing, err := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))
	assert.NoError(t, err)
	assert.Equal(t, "room-1", listing.DataroomID)
	assert.Contains(t, repo.Listings, listing.ListingID)

	assert.Len(t, siblings.Rooms, 1)
	assert.Equal(t, []string{"room-1"}, siblings.Cabinets)
	assert.Equal(t, "listing.created", events.Events[0].Type)
}

func TestCreateListing_DataRoomFailureKeepsProvidedID(t *testing.T) {
	service, _, siblings, _ := newListingFixture()
	siblings.FailRooms = true

	in := farmInput("Maple Grove Farm", "120", 0)
	in.DataroomID = "room-manual"
	listing, err := service.CreateListing(context.Background(), "Bearer t", "user-1", in)
	assert.NoError(t, err)
	assert.Equal(t, "room-manual", listing.DataroomID)
	assert.Empty(t, siblings.Cabinets)
}

func TestCreateListing_DuplicateReturnsError(t *testing.T) {
	service, repo, _, _ := newListingFixture()
	_, _ = service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))

	_, err := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))
	assert.ErrorIs(t, err, domain.ErrListingExists)
	assert.Len(t, repo.Listings, 1)
}

func TestCreateListing_DuplicateWithDriftedPriceReconciles(t *testing.T) {
	service, _, siblings, _ := newListingFixture()
	existing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))

	_, err := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 525000))
	assert.ErrorIs(t, err, domain.ErrListingExists)

	assert.Equal(t, []string{existing.ListingID}, siblings.SyncedIDs)
	payload := siblings.SyncedBody[0].(map[string]interface{})
	financial := payload["property_details"].(map[string]interface{})["financial"].(map[string]interface{})
	price := financial["price"].(map[string]interface{})
	assert.Equal(t, float64(525000), price["price"])
	assert.Equal(t, "USD", price["currency"])
}

func TestCreateListing_DuplicateWithoutDriftSkipsSync(t *testing.T) {
	service, _, siblings, _ := newListingFixture()
	_, _ = service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))

	_, err := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))
	assert.ErrorIs(t, err, domain.ErrListingExists)
	assert.Empty(t, siblings.SyncedIDs)
}

func TestCreateListing_DuplicateWithZeroPriceSkipsSync(t *testing.T) {
	service, _, siblings, _ := newListingFixture()
	_, _ = service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))

	in := farmInput("Maple Grove Farm", "120", 0)
	in.Status = domain.StatusActive
	_, err := service.CreateListing(context.Background(), "Bearer t", "user-1", in)
	assert.ErrorIs(t, err, domain.ErrListingExists)
	assert.Empty(t, siblings.SyncedIDs)
}

func TestModifyListing_MergesNestedSections(t *testing.T) {
	service, _, _, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 500000))

	status := domain.StatusActive
	city := "Des Moines"
	updated, err := service.ModifyListing(context.Background(), listing.ListingID, ListingUpdate{
		Status:  &status,
		Address: &AddressUpdate{City: &city},
	})
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusActive, updated.Status)
	assert.Equal(t, "Des Moines", updated.Address.City)
	assert.Equal(t, "120", updated.Address.HouseNumber)
}

func TestModifyListing_RejectsInvalidEnum(t *testing.T) {
	service, _, _, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	badType := "Castle"
	_, err := service.ModifyListing(context.Background(), listing.ListingID, ListingUpdate{Type: &badType})
	assert.Error(t, err)

	badEmail := "not-an-email"
	_, err = service.ModifyListing(context.Background(), listing.ListingID, ListingUpdate{
		ListingAgent: &AgentUpdate{Email: &badEmail},
	})
	assert.Error(t, err)
}

func TestBrowseListings_SearchAndPagination(t *testing.T) {
	service, _, _, _ := newListingFixture()
	for i := 0; i < 3; i++ {
		_, _ = service.CreateListing(context.Background(), "Bearer t", "user-1",
			farmInput(fmt.Sprintf("Maple Farm %d", i), fmt.Sprintf("%d", 100+i), 0))
	}
	_, _ = service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Oak Ridge", "200", 0))

	page, err := service.BrowseListings(context.Background(), domain.BrowseOptions{
		Search:   "maple",
		Page:     1,
		PageSize: 2,
	})
	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
}

func TestBrowseListings_ClampsPagination(t *testing.T) {
	service, _, _, _ := newListingFixture()
	_, _ = service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	page, err := service.BrowseListings(context.Background(), domain.BrowseOptions{Page: 0, PageSize: -1})
	assert.NoError(t, err)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Data, 1)
}

func TestDeleteListing_HardDeletesAndTearsDownRoom(t *testing.T) {
	service, repo, siblings, events := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	deleted, err := service.DeleteListing(context.Background(), "Bearer t", listing.ListingID)
	assert.NoError(t, err)
	assert.Equal(t, listing.ListingID, deleted.ListingID)

	assert.NotContains(t, repo.Listings, listing.ListingID)
	assert.Equal(t, []string{"room-1"}, siblings.DeletedRoom)
	assert.Equal(t, "listing.deleted", events.Events[len(events.Events)-1].Type)
}

func TestUploadMedia_ImagesGoThroughDataRoom(t *testing.T) {
	service, _, siblings, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	updated, err := service.UploadMedia(context.Background(), "Bearer t", "user-1",
		listing.ListingID, "image",
		[]MediaUpload{
			{FileName: "front.jpg", Data: strings.NewReader("a")},
			{FileName: "back.jpg", Data: strings.NewReader("b")},
		}, nil)
	assert.NoError(t, err)
	assert.Len(t, updated.Images, 2)
	assert.Len(t, siblings.Uploads, 2)
	assert.Equal(t, "room-1", siblings.Uploads[0].DataroomID)
}

func TestUploadMedia_MapsAreValidatedAndEmbedded(t *testing.T) {
	service, _, _, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	updated, err := service.UploadMedia(context.Background(), "Bearer t", "user-1",
		listing.ListingID, "map", nil,
		[]domain.MapData{{Name: "Well", Latitude: 42.03, Longitude: -93.62}})
	assert.NoError(t, err)
	assert.Len(t, updated.Maps, 1)

	_, err = service.UploadMedia(context.Background(), "Bearer t", "user-1",
		listing.ListingID, "map", nil,
		[]domain.MapData{{Name: "Bad", Latitude: 120, Longitude: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidMap)
}

func TestUploadMedia_RejectsEmptyAndUnknownTypes(t *testing.T) {
	service, _, _, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	_, err := service.UploadMedia(context.Background(), "Bearer t", "user-1",
		listing.ListingID, "image", nil, nil)
	assert.ErrorIs(t, err, domain.ErrNoMediaFile)

	_, err = service.UploadMedia(context.Background(), "Bearer t", "user-1",
		listing.ListingID, "hologram",
		[]MediaUpload{{FileName: "x", Data: strings.NewReader("x")}}, nil)
	assert.Error(t, err)
}

func TestGetMedia_PaginatesImages(t *testing.T) {
	service, repo, siblings, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))

	stored := repo.Listings[listing.ListingID]
	for i := 1; i <= 5; i++ {
		id := fmt.Sprintf("img-%d", i)
		stored.Images = append(stored.Images, id)
		siblings.Files[id] = map[string]interface{}{
			"name":        fmt.Sprintf("photo-%d.jpg", i),
			"content_url": fmt.Sprintf("https://cdn/photo-%d.jpg", i),
		}
	}
	stored.Videos = []string{"vid-1"}
	siblings.Files["vid-1"] = map[string]interface{}{
		"name":        "tour.mp4",
		"content_url": "https://cdn/tour.mp4",
	}

	view, err := service.GetMedia(context.Background(), "Bearer t", listing.ListingID, 2, 2)
	assert.NoError(t, err)
	assert.Len(t, view.Images, 2)
	assert.Equal(t, "photo-3.jpg", view.Images[0].Name)
	assert.Equal(t, "photo-4.jpg", view.Images[1].Name)
	assert.Equal(t, 2, view.ImagesMeta.CurrentPage)
	assert.Equal(t, 3, view.ImagesMeta.TotalPages)
	assert.Equal(t, 5, view.ImagesMeta.TotalItems)

	assert.Len(t, view.Videos, 1)
	assert.Equal(t, "https://cdn/tour.mp4", view.Videos[0].URL)
}

func TestGetMedia_UnresolvableFileFails(t *testing.T) {
	service, repo, _, _ := newListingFixture()
	listing, _ := service.CreateListing(context.Background(), "Bearer t", "user-1",
		farmInput("Maple Grove Farm", "120", 0))
	repo.Listings[listing.ListingID].Images = []string{"ghost"}

	_, err := service.GetMedia(context.Background(), "Bearer t", listing.ListingID, 1, 10)
	assert.Error(t, err)
}
