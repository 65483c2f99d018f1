package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, RequestTimeout: 2 * time.Second})
}

func TestSuggestReturnsOrderedList(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/suggest", r.URL.Path)
		require.Equal(t, "cat", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{"suggestions": []string{"cat", "catalog", "catfish"}})
	}))

	got, err := c.Suggest(context.Background(), "cat")
	require.NoError(t, err)
	require.Equal(t, []string{"cat", "catalog", "catfish"}, got)
}

func TestSuggestNonSuccessStatusIsTransportError(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.Suggest(context.Background(), "cat")
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	require.Equal(t, http.StatusServiceUnavailable, terr.Status)
}

func TestSuggestEscapesQuery(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "a&b c", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{"suggestions": []string{}})
	}))

	_, err := c.Suggest(context.Background(), "a&b c")
	require.NoError(t, err)
}

func TestSearchRoundTrip(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/search", r.URL.Path)

		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "cat", req.Query)
		require.Equal(t, 1, req.Page)
		require.Equal(t, 10, req.PerPage)

		json.NewEncoder(w).Encode(SearchResponse{
			Results: nil, TotalResults: 42, ElapsedMs: 12.5, Page: 1, PerPage: 10,
		})
	}))

	resp, err := c.Search(context.Background(), "cat", 1, 10)
	require.NoError(t, err)
	require.Equal(t, 42, resp.TotalResults)
	require.InDelta(t, 12.5, resp.ElapsedMs, 0.001)
}

func TestProbeUsesMinimalPageSize(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, 1, req.PerPage, "probe must request the minimal page size")
		json.NewEncoder(w).Encode(SearchResponse{TotalResults: 12})
	}))

	total, err := c.Probe(context.Background(), "cat")
	require.NoError(t, err)
	require.Equal(t, 12, total)
}

func TestSearchMalformedBodyIsTransportError(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))

	_, err := c.Search(context.Background(), "cat", 1, 10)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
}

func TestWebSearchParsesAnswerAndSnippets(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/web-search", r.URL.Path)
		w.Write([]byte(`{
			"wikipedia": {"title": "Cat", "extract": "A small animal", "url": "https://example.org/cat"},
			"web_results": [{"title": "t1", "url": "u1", "snippet": "s1"}]
		}`))
	}))

	resp, err := c.WebSearch(context.Background(), "cat")
	require.NoError(t, err)
	require.NotNil(t, resp.Wikipedia)
	require.Equal(t, "Cat", resp.Wikipedia.Title)
	require.Len(t, resp.WebResults, 1)
}

func TestWebSearchNullAnswer(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"wikipedia": null, "web_results": []}`))
	}))

	resp, err := c.WebSearch(context.Background(), "cat")
	require.NoError(t, err)
	require.Nil(t, resp.Wikipedia)
	require.Empty(t, resp.WebResults)
}

func TestDocumentFetchEscapesID(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/documents/notes%2Fcat.txt", r.URL.EscapedPath())
		json.NewEncoder(w).Encode(Document{DocID: "notes/cat.txt", Title: "Cat notes", Content: "meow"})
	}))

	doc, err := c.Document(context.Background(), "notes/cat.txt")
	require.NoError(t, err)
	require.Equal(t, "Cat notes", doc.Title)
	require.Equal(t, "meow", doc.Content)
}

func TestHealthReportsBody(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		w.Write([]byte(`{"status":"healthy"}`))
	}))

	detail, err := c.Health(context.Background())
	require.NoError(t, err)
	require.Contains(t, detail, "healthy")
}

func TestHealthNonSuccessStatus(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := c.Health(context.Background())
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
}

func TestContextCancellationStopsRequest(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	defer close(block)
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Search(ctx, "cat", 1, 10)
	require.Error(t, err)
}
