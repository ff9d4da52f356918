package domain

import (
	"context"
	"io"

	"github.com/terravest/platform/internal/shared/query"
)

// BrowseOptions drive the public catalog view: named sort presets plus a
// free-text search over name and address fields.
type BrowseOptions struct {
	SortBy   string
	Page     int
	PageSize int
	Search   string
}

// ListingRepository is the persistence port for listings.
type ListingRepository interface {
	Create(ctx context.Context, l *Listing) error
	GetByID(ctx context.Context, id string) (*Listing, error)
	FindDuplicate(ctx context.Context, name, houseNumber string) (*Listing, error)
	Update(ctx context.Context, l *Listing) error
	Browse(ctx context.Context, opts BrowseOptions) ([]*Listing, int64, error)
	HardDelete(ctx context.Context, id string) (*Listing, error)
	Query(ctx context.Context, opts query.Options) ([]*Listing, int64, error)
	Search(ctx context.Context, opts query.SearchOptions) ([]*Listing, int64, error)
}

// DataRoomGateway manages the data room attached to each listing.
type DataRoomGateway interface {
	CreateDataRoom(ctx context.Context, auth, name, description, ari, ownerID string) (string, error)
	CreateCabinet(ctx context.Context, auth, dataroomID, name, description, ari, ownerID string) error
	DeleteDataRoom(ctx context.Context, auth, dataroomID string) error
	GetFile(ctx context.Context, auth, fileID string) (map[string]interface{}, error)
	UploadFile(ctx context.Context, auth, fileName string, data io.Reader, userID, description, ari, dataroomID string) (string, error)
}

// ListingSyncGateway pushes a partial update back through the public listing
// API, used when a duplicate arrives with drifted price or status.
type ListingSyncGateway interface {
	UpdateListing(ctx context.Context, auth, listingID string, payload interface{}) error
}
