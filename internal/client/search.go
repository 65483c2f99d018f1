package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/utcofficial/sophon-search/internal/domain"
)

// SearchRequest is the body for the search endpoint
type SearchRequest struct {
	Query   string `json:"query"`
	Page    int    `json:"page"`
	PerPage int    `json:"per_page"`
}

// SearchResponse is the payload returned by the search endpoint
type SearchResponse struct {
	Results      []domain.SearchResult `json:"results"`
	TotalResults int                   `json:"total_results"`
	ElapsedMs    float64               `json:"elapsed_ms"`
	Page         int                   `json:"page"`
	PerPage      int                   `json:"per_page"`
}

// Search runs a full search against the primary source
func (c *Client) Search(ctx context.Context, query string, page, perPage int) (*SearchResponse, error) {
	body, err := json.Marshal(SearchRequest{Query: query, Page: page, PerPage: perPage})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/search", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: "/api/search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Endpoint: "/api/search", Status: resp.StatusCode}
	}

	var out SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &TransportError{Endpoint: "/api/search", Err: err}
	}

	return &out, nil
}

// Probe runs a minimal-page-size search to obtain only the total match
// count before the full fetch
func (c *Client) Probe(ctx context.Context, query string) (int, error) {
	resp, err := c.Search(ctx, query, 1, 1)
	if err != nil {
		return 0, err
	}
	return resp.TotalResults, nil
}
