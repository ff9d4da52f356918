package domain

import (
	"context"
	"io"

	"github.com/terravest/platform/internal/shared/query"
)

// OfferingRepository is the persistence port for offerings.
type OfferingRepository interface {
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, id string) (*Offering, error)
	GetByListingID(ctx context.Context, listingID string) (*Offering, error)
	Update(ctx context.Context, o *Offering) error
	ListActive(ctx context.Context) ([]*Offering, error)
	SoftDelete(ctx context.Context, id string) (*Offering, error)
	Query(ctx context.Context, opts query.Options) ([]*Offering, int64, error)
	Search(ctx context.Context, opts query.SearchOptions) ([]*Offering, int64, error)
	Crops(ctx context.Context) ([]string, error)
}

// SubscriptionFilter narrows subscription listings.
type SubscriptionFilter struct {
	OfferingID string
	UserID     string
}

// SubscriptionRepository is the persistence port for subscriptions.
type SubscriptionRepository interface {
	Create(ctx context.Context, s *Subscription) error
	GetByID(ctx context.Context, id string) (*Subscription, error)
	FindActive(ctx context.Context, offeringID, userID string) (*Subscription, error)
	List(ctx context.Context, filter SubscriptionFilter) ([]*Subscription, error)
	Update(ctx context.Context, s *Subscription) error
	SoftDelete(ctx context.Context, id string) (*Subscription, error)
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

// PortfolioEntry is the investment recorded in the user's portfolio when a
// subscription is created.
type PortfolioEntry struct {
	UserID        string
	OfferingID    string
	Shares        float64
	SharePrice    float64
	HoldingPeriod int
}

// PortfolioGateway pushes new investments to the portfolio service.
type PortfolioGateway interface {
	RegisterInvestment(ctx context.Context, auth string, entry PortfolioEntry) error
}
