package render

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"strings"
	"time"

	// Background assets arrive as PNG, JPEG, or GIF.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/slidecast/slidecast/pkg/errors"
)

// ImageLoader resolves a page's image reference to a decoded image.
// Implementations must honor ctx cancellation for remote fetches.
type ImageLoader interface {
	Load(ctx context.Context, ref string) (image.Image, error)
}

// LoaderFunc adapts a function to the ImageLoader interface.
type LoaderFunc func(ctx context.Context, ref string) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, ref string) (image.Image, error) {
	return f(ctx, ref)
}

// HTTPLoader loads images over HTTP(S), falling back to the local
// filesystem for plain path references.
type HTTPLoader struct {
	client *http.Client
}

// NewHTTPLoader creates a loader with the given HTTP client.
// Pass nil to use a default client with a 30 second timeout.
func NewHTTPLoader(client *http.Client) *HTTPLoader {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPLoader{client: client}
}

// Load fetches and decodes the image at ref.
func (l *HTTPLoader) Load(ctx context.Context, ref string) (image.Image, error) {
	if ref == "" {
		return nil, errors.New(errors.ErrCodeNotFound, "empty image reference")
	}

	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return l.loadHTTP(ctx, ref)
	}
	return loadFile(ref)
}

func (l *HTTPLoader) loadHTTP(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch image %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New(errors.ErrCodeNetwork, "fetch image %s: status %d", url, resp.StatusCode)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", url, err)
	}
	return img, nil
}

func loadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}
