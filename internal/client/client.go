// Package client holds the HTTP collaborators of the search UI: the
// suggestion source, the primary search source, the supplementary web
// source, and the document/health endpoints. All endpoints share one
// base URL and timeout injected at construction.
package client

import (
	"fmt"
	"net/http"
	"time"
)

// Options configures the HTTP collaborators
type Options struct {
	BaseURL        string
	RequestTimeout time.Duration
}

// TransportError represents a non-success HTTP status or a failed request
type TransportError struct {
	Endpoint string
	Status   int // 0 when the request never produced a response
	Err      error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s request failed: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client talks to the search backend
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client from explicit options
func New(opts Options) *Client {
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured endpoint base
func (c *Client) BaseURL() string { return c.baseURL }
