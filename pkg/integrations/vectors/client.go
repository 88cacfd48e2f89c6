// Package vectors provides a client for the asset-search service: vector
// search over curated background images and inspiration hooks. Given a
// free-text query and a result limit, the service returns candidates
// ordered by descending relevance score.
package vectors

import (
	"context"
	"fmt"
	"time"

	"github.com/slidecast/slidecast/pkg/cache"
	"github.com/slidecast/slidecast/pkg/integrations"
)

const defaultBaseURL = "https://vectors.slidecast.dev"

// Result is one search candidate. Image results carry SourceURL; hook
// results carry Text. Score is a relevance value in [0, 1]. Ordering by
// descending score is assumed but not re-verified.
type Result struct {
	Key       string   `json:"key"`
	Score     float64  `json:"score"`
	SourceURL string   `json:"source_url,omitempty"`
	Text      string   `json:"text,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	Tags      []string `json:"tags,omitempty"`
}

// Client is an asset-search service client. Search responses are memoized
// through the configured cache backend, keyed by query.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an asset-search client with the given cache backend.
// Pass nil for backend to disable caching and "" for baseURL to use the
// public endpoint.
func NewClient(backend cache.Cache, cacheTTL time.Duration, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(backend, cacheTTL, nil),
		baseURL: baseURL,
	}
}

type searchResponse struct {
	Results []Result `json:"results"`
}

// SearchImages returns up to topK background image candidates for the query.
func (c *Client) SearchImages(ctx context.Context, query string, topK int) ([]Result, error) {
	return c.search(ctx, "images", query, topK)
}

// SearchHooks returns up to topK inspiration hook candidates for the query.
func (c *Client) SearchHooks(ctx context.Context, query string, topK int) ([]Result, error) {
	return c.search(ctx, "hooks", query, topK)
}

func (c *Client) search(ctx context.Context, kind, query string, topK int) ([]Result, error) {
	key := cache.Key(kind, fmt.Sprintf("%s|%d", query, topK))
	url := fmt.Sprintf("%s/search/%s?q=%s&top_k=%d", c.baseURL, kind, integrations.URLEncode(query), topK)

	var resp searchResponse
	err := c.Cached(ctx, key, &resp, func() error {
		return c.GetJSON(ctx, url, &resp)
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Results) > topK {
		resp.Results = resp.Results[:topK]
	}
	return resp.Results, nil
}
