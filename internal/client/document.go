package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Document is a full document fetched by ID for the pager view
type Document struct {
	DocID    string `json:"doc_id"`
	FilePath string `json:"file_path"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	FileSize int64  `json:"file_size"`
}

// Document fetches the full document for a result identifier
func (c *Client) Document(ctx context.Context, id string) (*Document, error) {
	u := fmt.Sprintf("%s/api/documents/%s", c.baseURL, url.PathEscape(id))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build document request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Endpoint: "/api/documents", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Endpoint: "/api/documents", Status: resp.StatusCode}
	}

	var out Document
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &TransportError{Endpoint: "/api/documents", Err: err}
	}

	return &out, nil
}

// Health checks the backend health endpoint. The payload is opaque to
// the pipeline; only reachability matters here.
func (c *Client) Health(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return "", fmt.Errorf("failed to build health request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Endpoint: "/health", Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode != http.StatusOK {
		return string(body), &TransportError{Endpoint: "/health", Status: resp.StatusCode}
	}

	return string(body), nil
}
