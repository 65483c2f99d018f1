package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/utcofficial/sophon-search/internal/domain"
)

// WebResponse is the payload returned by the supplementary web source:
// at most one answer box plus an ordered list of web snippets
type WebResponse struct {
	Wikipedia  *domain.SupplementaryAnswer `json:"wikipedia"`
	WebResults []domain.WebSnippet         `json:"web_results"`
}

// WebSearch queries the supplementary source. Used only by the
// dual-source pipeline; a failure here fails the whole join.
func (c *Client) WebSearch(ctx context.Context, query string) (*WebResponse, error) {
	u := fmt.Sprintf("%s/api/web-search?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build web-search request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: "/api/web-search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Endpoint: "/api/web-search", Status: resp.StatusCode}
	}

	var out WebResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &TransportError{Endpoint: "/api/web-search", Err: err}
	}

	return &out, nil
}
