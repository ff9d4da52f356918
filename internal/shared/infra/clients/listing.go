package clients

import (
	"context"
	"net/http"
)

// ListingClient reads and updates listings in the listing service.
type ListingClient struct {
	baseClient
}

func NewListingClient(base string) *ListingClient {
	return &ListingClient{newBaseClient(base)}
}

func (c *ListingClient) GetListing(ctx context.Context, auth, listingID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/listings/"+listingID, auth, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateListing pushes a partial update, used by the duplicate-listing
// price/status reconciliation flow.
func (c *ListingClient) UpdateListing(ctx context.Context, auth, listingID string, payload interface{}) error {
	return c.doJSON(ctx, http.MethodPut, "/listings/"+listingID, auth, payload, nil)
}
