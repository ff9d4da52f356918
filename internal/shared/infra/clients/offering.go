package clients

import (
	"context"
	"net/http"
)

// OfferingClient reads offerings from the offering service.
type OfferingClient struct {
	baseClient
}

func NewOfferingClient(base string) *OfferingClient {
	return &OfferingClient{newBaseClient(base)}
}

// GetOffering fetches an offering by id. The response is the enriched
// offering document, kept loosely typed because callers only pick a few
// fields out of it.
func (c *OfferingClient) GetOffering(ctx context.Context, auth, offeringID string) (map[string]interface{}, error) {
	var out map[string]interface{}
	if err := c.doJSON(ctx, http.MethodGet, "/offerings/"+offeringID, auth, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
