package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/slidecast/slidecast/pkg/cache"
	"github.com/slidecast/slidecast/pkg/httputil"
	"github.com/slidecast/slidecast/pkg/observability"
)

// Client provides shared HTTP functionality for all service clients.
// It handles response caching, retry logic, and common request headers.
//
// All methods are safe for concurrent use by multiple goroutines, provided
// the cache backend is.
type Client struct {
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
	headers map[string]string
}

// NewClient creates a Client with the given cache backend and default headers.
// Pass nil for backend to disable caching, and nil for headers if no default
// headers are needed.
func NewClient(backend cache.Cache, cacheTTL time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:    NewHTTPClient(),
		cache:   backend,
		ttl:     cacheTTL,
		headers: headers,
	}
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// The fetch function should populate v; on success, v is stored in the cache
// as JSON under key. Fetches are retried with backoff on transient failures.
func (c *Client) Cached(ctx context.Context, key string, v any, fetch func() error) error {
	if data, ok, _ := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(data, v); err == nil {
			observability.Cache().OnCacheHit(ctx, keyType(key))
			return nil
		}
		// Corrupt entry - drop it and fetch fresh.
		_ = c.cache.Delete(ctx, key)
	}
	observability.Cache().OnCacheMiss(ctx, keyType(key))
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		_ = c.cache.Set(ctx, key, data, c.ttl)
		observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
	}
	return nil
}

// keyType extracts the namespace from a cache key ("images:ab12" -> "images").
func keyType(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}

// GetJSON performs an HTTP GET request and JSON-decodes the response into v.
func (c *Client) GetJSON(ctx context.Context, url string, v any) error {
	body, err := c.doRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	defer body.Close()
	return json.NewDecoder(body).Decode(v)
}

// PostText performs an HTTP POST with a JSON payload and returns the plain
// text response body. Used by the text-generation service, which answers
// prompts with raw text.
func (c *Client) PostText(ctx context.Context, url string, payload any) (string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	body, err := c.doRequest(ctx, http.MethodPost, url, data)
	if err != nil {
		return "", err
	}
	defer body.Close()
	text, err := io.ReadAll(body)
	return string(text), err
}

func (c *Client) doRequest(ctx context.Context, method, url string, payload []byte) (io.ReadCloser, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &httputil.RetryableError{Err: fmt.Errorf("%w: %v", ErrNetwork, err)}
	}

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return &httputil.RetryableError{Err: fmt.Errorf("%w: status %d", ErrNetwork, code)}
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}
