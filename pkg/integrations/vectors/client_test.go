package vectors

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slidecast/slidecast/pkg/cache"
)

func testClient(t *testing.T, baseURL string, backend cache.Cache) *Client {
	t.Helper()
	return NewClient(backend, time.Hour, baseURL)
}

func TestSearchImages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/images" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("q"); got != "FitTracker Hype app interface mobile" {
			t.Errorf("unexpected query: %q", got)
		}
		resp := searchResponse{Results: []Result{
			{Key: "images/ui-1.jpg", Score: 0.95, SourceURL: "https://cdn.example.com/ui-1.jpg"},
			{Key: "images/ui-2.jpg", Score: 0.88, SourceURL: "https://cdn.example.com/ui-2.jpg"},
		}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	results, err := c.SearchImages(context.Background(), "FitTracker Hype app interface mobile", 4)
	if err != nil {
		t.Fatalf("SearchImages failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].SourceURL != "https://cdn.example.com/ui-1.jpg" {
		t.Errorf("unexpected source url: %s", results[0].SourceURL)
	}
	if results[0].Score != 0.95 {
		t.Errorf("unexpected score: %v", results[0].Score)
	}
}

func TestSearchHooks(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/hooks" {
			http.NotFound(w, r)
			return
		}
		resp := searchResponse{Results: []Result{
			{Key: "hooks/viral-social-proof", Score: 0.89, Text: "10M+ users can't be wrong about this app",
				Notes: "Social proof viral hook", Tags: []string{"social-proof", "viral"}},
		}}
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	results, err := c.SearchHooks(context.Background(), "Hype viral marketing users", 1)
	if err != nil {
		t.Fatalf("SearchHooks failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Text == "" {
		t.Error("hook result should carry text")
	}
}

func TestSearchTruncatesToTopK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var results []Result
		for i := 0; i < 8; i++ {
			results = append(results, Result{Key: "k", Score: 1 - float64(i)*0.1})
		}
		json.NewEncoder(w).Encode(searchResponse{Results: results})
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	results, err := c.SearchImages(context.Background(), "q", 4)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Errorf("expected results truncated to 4, got %d", len(results))
	}
}

func TestSearchUsesCache(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(searchResponse{Results: []Result{{Key: "k", Score: 0.5}}})
	}))
	defer server.Close()

	c := testClient(t, server.URL, cache.NewMemoryCache(16))

	for i := 0; i < 3; i++ {
		if _, err := c.SearchImages(context.Background(), "same query", 4); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 1 {
		t.Errorf("expected 1 upstream call with caching, got %d", calls)
	}

	// A different query misses the cache.
	if _, err := c.SearchImages(context.Background(), "other query", 4); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls, got %d", calls)
	}
}

func TestSearchServiceError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	if _, err := c.SearchImages(context.Background(), "q", 4); err == nil {
		t.Fatal("expected error for 400 response")
	}
}
