package haclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shbatm/ha-mcp-sub002/internal/search"
)

// FetchStates retrieves the full entity state snapshot from GET /api/states.
func (c *Client) FetchStates(ctx context.Context) ([]search.Entity, error) {
	body, err := c.get(ctx, "/api/states")
	if err != nil {
		return nil, fmt.Errorf("fetching states: %w", err)
	}
	defer body.Close()

	var entities []search.Entity
	if err := json.NewDecoder(body).Decode(&entities); err != nil {
		return nil, fmt.Errorf("decoding states: %w", err)
	}
	return entities, nil
}

// CheckAPI verifies connectivity and authentication against GET /api/.
func (c *Client) CheckAPI(ctx context.Context) error {
	body, err := c.get(ctx, "/api/")
	if err != nil {
		return err
	}
	body.Close()
	return nil
}

// get performs an authenticated GET and returns the response body on 2xx.
func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", path, ErrUnauthorized)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w: %d", path, ErrUnexpectedStatus, resp.StatusCode)
	}
	return resp.Body, nil
}
