// Package pollinations provides a client for the Pollinations text-generation
// service. Callers submit a natural-language prompt with a model identifier,
// seed, and temperature; the service answers with plain text.
//
// Generation responses are never cached: each call is an independent request.
// Callers must supply deterministic fallback text when a call fails.
package pollinations

import (
	"context"
	"math/rand"
	"strings"

	"github.com/slidecast/slidecast/pkg/httputil"
	"github.com/slidecast/slidecast/pkg/integrations"
)

const defaultBaseURL = "https://text.pollinations.ai"

// DefaultModel is the model identifier sent when none is configured.
const DefaultModel = "openai"

// Options configures generation requests.
type Options struct {
	BaseURL string // service endpoint (default: the public Pollinations API)
	Model   string // model identifier (default: "openai")
	Seed    int    // fixed seed for reproducible runs; 0 picks a random seed per call
}

// Client is a text-generation service client.
type Client struct {
	*integrations.Client
	baseURL string
	opts    Options
}

// NewClient creates a text-generation client.
func NewClient(opts Options) *Client {
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	return &Client{
		Client:  integrations.NewClient(nil, 0, nil),
		baseURL: opts.BaseURL,
		opts:    opts,
	}
}

type promptRequest struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model"`
	Seed        int     `json:"seed"`
	Temperature float64 `json:"temperature"`
}

// Generate submits a prompt and returns the generated phrase, trimmed.
// Transient failures are retried with backoff before the error is returned.
func (c *Client) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	seed := c.opts.Seed
	if seed == 0 {
		seed = rand.Intn(1000000)
	}
	req := promptRequest{
		Prompt:      prompt,
		Model:       c.opts.Model,
		Seed:        seed,
		Temperature: temperature,
	}

	var text string
	err := httputil.RetryWithBackoff(ctx, func() error {
		var err error
		text, err = c.PostText(ctx, c.baseURL+"/prompt", req)
		return err
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
