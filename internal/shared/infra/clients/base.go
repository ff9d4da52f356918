// Package clients holds the thin HTTP clients for the sibling services
// (listing, offering, portfolio, data-room, policy). Callers decide whether
// a failure is fatal; creation flows treat most of these as best-effort.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type baseClient struct {
	base string
	http *http.Client
}

func newBaseClient(base string) baseClient {
	return baseClient{base: base, http: http.DefaultClient}
}

// doJSON performs a JSON round trip. out may be nil when the response body
// is irrelevant. auth, when set, is forwarded verbatim as Authorization.
func (c baseClient) doJSON(ctx context.Context, method, path, auth string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
