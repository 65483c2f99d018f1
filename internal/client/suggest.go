package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// suggestResponse is the payload returned by the suggest endpoint
type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest returns ordered autocomplete suggestions for a partial query.
// Callers absorb any error to an empty list; suggestion failures are
// never surfaced to the user.
func (c *Client) Suggest(ctx context.Context, query string) ([]string, error) {
	u := fmt.Sprintf("%s/api/suggest?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build suggest request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: "/api/suggest", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Endpoint: "/api/suggest", Status: resp.StatusCode}
	}

	var out suggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &TransportError{Endpoint: "/api/suggest", Err: err}
	}

	return out.Suggestions, nil
}
