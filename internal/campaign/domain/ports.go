package domain

import (
	"context"
	"io"

	"github.com/terravest/platform/internal/shared/query"
)

// CampaignRepository is the persistence port for campaigns.
type CampaignRepository interface {
	Create(ctx context.Context, c *Campaign) error
	GetByID(ctx context.Context, id string) (*Campaign, error)
	Update(ctx context.Context, c *Campaign) error
	ListActive(ctx context.Context) ([]*Campaign, error)
	SoftDelete(ctx context.Context, id string) (*Campaign, error)
	Query(ctx context.Context, opts query.Options) ([]*Campaign, int64, error)
	Search(ctx context.Context, opts query.SearchOptions) ([]*Campaign, int64, error)
}

// OfferingGateway reads offerings from the offering service.
type OfferingGateway interface {
	GetOffering(ctx context.Context, auth, offeringID string) (map[string]interface{}, error)
}

// ListingGateway reads listings from the listing service.
type ListingGateway interface {
	GetListing(ctx context.Context, auth, listingID string) (map[string]interface{}, error)
}

// FileGateway reads and stores files in the data-room service.
type FileGateway interface {
	GetFile(ctx context.Context, auth, fileID string) (map[string]interface{}, error)
	UploadFile(ctx context.Context, auth, fileName string, data io.Reader, userID, description, ari, dataroomID string) (string, error)
}
