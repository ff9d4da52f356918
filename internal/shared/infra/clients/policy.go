package clients

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
)

// PolicyClient asks the policy service whether a principal may perform an
// action. Transport failures deny.
type PolicyClient struct {
	baseClient
}

func NewPolicyClient(base string) *PolicyClient {
	return &PolicyClient{newBaseClient(base)}
}

type verifyRequest struct {
	Principal string `json:"principal"`
	Action    string `json:"action"`
}

type verifyResponse struct {
	Allowed bool `json:"allowed"`
}

func (c *PolicyClient) Verify(ctx context.Context, auth, principal, action string) (bool, error) {
	var out verifyResponse
	err := c.doJSON(ctx, http.MethodPost, "/verify", auth, verifyRequest{Principal: principal, Action: action}, &out)
	if err != nil {
		return false, err
	}
	return out.Allowed, nil
}

func decodeJSON(r io.Reader, out interface{}) error {
	return json.NewDecoder(r).Decode(out)
}
