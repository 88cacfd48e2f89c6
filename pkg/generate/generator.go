// Package generate orchestrates slide creation: asset search for background
// images and an inspiration hook, text generation for copy, and assembly of
// a complete 4-page slide.
//
// The defining contract is "generate or degrade gracefully": the caller
// always receives a usable 4-page slide. Asset-search failure yields a
// complete fallback slide with placeholder imagery and static template
// text; individual text-generation failures degrade to deterministic
// strategy-derived fallbacks. Generation failures are never surfaced to the
// user as errors.
package generate

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/slidecast/slidecast/pkg/integrations"
	"github.com/slidecast/slidecast/pkg/integrations/vectors"
	"github.com/slidecast/slidecast/pkg/observability"
	"github.com/slidecast/slidecast/pkg/slides"
)

// pageCount is the fixed number of pages per generated slide.
const pageCount = 4

// Font sizes for generated pages: the hook page is larger.
const (
	hookFontSize = 52
	bodyFontSize = 44
)

// Generation temperatures, matching the prompts' creative range.
const (
	hookTemperature = 0.7
	pageTemperature = 0.8
)

// TextGenerator produces a phrase for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float64) (string, error)
}

// AssetSearcher finds background images and inspiration hooks.
type AssetSearcher interface {
	SearchImages(ctx context.Context, query string, topK int) ([]vectors.Result, error)
	SearchHooks(ctx context.Context, query string, topK int) ([]vectors.Result, error)
}

// Generator assembles slides from external service results.
type Generator struct {
	text   TextGenerator
	assets AssetSearcher
	logger *log.Logger
}

// New creates a Generator. Pass nil for logger to use the default.
func New(text TextGenerator, assets AssetSearcher, logger *log.Logger) *Generator {
	if logger == nil {
		logger = log.Default()
	}
	return &Generator{text: text, assets: assets, logger: logger}
}

// GenerateSlide produces a complete 4-page slide for the app and strategy.
//
// Validation failures (missing app name/description, unknown strategy) are
// returned synchronously before any generation begins. After validation the
// call cannot fail: service errors degrade to the fallback slide.
func (g *Generator) GenerateSlide(ctx context.Context, app slides.AppDetails, strategyID string) (slides.Slide, error) {
	if err := app.Validate(); err != nil {
		return slides.Slide{}, err
	}
	strategy, err := slides.StrategyByID(strategyID)
	if err != nil {
		return slides.Slide{}, err
	}

	observability.Generation().OnSlideStart(ctx, app.Name, strategy.ID)
	start := time.Now()
	complete := func(s slides.Slide, fallback bool) slides.Slide {
		observability.Generation().OnSlideComplete(ctx, app.Name, strategy.ID, len(s.Pages), time.Since(start), fallback)
		return s
	}

	imageQuery := fmt.Sprintf("%s %s app interface mobile", app.Name, strategy.ID)
	images, err := g.assets.SearchImages(ctx, imageQuery, pageCount)
	if err != nil {
		g.logger.Warn("image search failed, using fallback slide", "err", err)
		return complete(g.fallbackSlide(app, strategy.ID), true), nil
	}

	audience := app.Audience
	if audience == "" {
		audience = "users"
	}
	hookQuery := fmt.Sprintf("%s viral marketing %s", strategy.ID, audience)
	hooks, err := g.assets.SearchHooks(ctx, hookQuery, 1)
	if err != nil {
		g.logger.Warn("hook search failed, using fallback slide", "err", err)
		return complete(g.fallbackSlide(app, strategy.ID), true), nil
	}

	inspiration := vectors.Result{
		Key:   "fallback-hook",
		Score: 0.5,
		Text:  "Transform your experience",
		Notes: "Fallback hook",
		Tags:  []string{"fallback"},
	}
	if len(hooks) > 0 {
		inspiration = hooks[0]
	}

	customHook, provenance := g.customizeHook(ctx, app, inspiration, strategy.ID)

	pages := make([]slides.SlidePage, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		image := placeholderImage(app.Name, i)
		score := 0.5
		if i < len(images) {
			image = images[i].SourceURL
			score = images[i].Score
		}

		text := customHook
		fontSize := hookFontSize
		var prov *slides.HookProvenance
		if i == 0 {
			prov = provenance
		} else {
			text = g.pageContent(ctx, app, strategy.ID, i)
			fontSize = bodyFontSize
		}

		page := slides.NewPage(image, text)
		page.ImageScore = score
		page.TextStyle.FontSize = fontSize
		page.HookProvenance = prov
		pages = append(pages, page)
	}

	return complete(slides.Slide{
		ID:        slides.NewSlideID(),
		Pages:     pages,
		CreatedAt: time.Now(),
		Strategy:  strategy.ID,
		Name:      fmt.Sprintf("%s - %s Slide", app.Name, strategy.ID),
	}, false), nil
}

// customizeHook transforms the inspiration hook into an app-specific one,
// recording full provenance. A text-service failure degrades to the
// deterministic strategy fallback; provenance is recorded either way.
func (g *Generator) customizeHook(ctx context.Context, app slides.AppDetails, inspiration vectors.Result, strategy string) (string, *slides.HookProvenance) {
	audience := app.Audience
	if audience == "" {
		audience = "general users"
	}
	prompt := fmt.Sprintf(hookPromptTemplate,
		inspiration.Text, app.Name, app.Description, strategy, audience, strategy)

	hook, err := g.text.Generate(ctx, prompt, hookTemperature)
	if err != nil || hook == "" {
		g.logger.Debug("hook generation failed, using fallback", "err", err)
		hook = hookFallback(app, strategy)
	}

	return hook, &slides.HookProvenance{
		OriginalHook:        inspiration.Text,
		OriginalKey:         inspiration.Key,
		OriginalScore:       inspiration.Score,
		OriginalNotes:       inspiration.Notes,
		OriginalTags:        inspiration.Tags,
		CustomizedHook:      hook,
		Strategy:            strategy,
		CustomizationPrompt: prompt,
	}
}

// pageContent generates the copy for pages 1-3, degrading to the fixed
// per-index fallback on failure.
func (g *Generator) pageContent(ctx context.Context, app slides.AppDetails, strategy string, index int) string {
	text, err := g.text.Generate(ctx, pagePrompt(app, strategy, index), pageTemperature)
	if err != nil || text == "" {
		g.logger.Debug("page content generation failed, using fallback", "page", index, "err", err)
		return pageFallback(app, index)
	}
	return text
}

// fallbackSlide builds the complete degraded slide: placeholder imagery,
// static template text, default styling, no provenance.
func (g *Generator) fallbackSlide(app slides.AppDetails, strategy string) slides.Slide {
	pages := make([]slides.SlidePage, 0, pageCount)
	for i := 0; i < pageCount; i++ {
		text := fmt.Sprintf("Page %d content", i+1)
		if i == 0 {
			text = fmt.Sprintf("Discover %s", app.Name)
		}
		pages = append(pages, slides.NewPage(placeholderImage(app.Name, i), text))
	}
	return slides.Slide{
		ID:        slides.NewSlideID(),
		Pages:     pages,
		CreatedAt: time.Now(),
		Strategy:  strategy,
		Name:      fmt.Sprintf("%s - %s Slide", app.Name, strategy),
	}
}

// placeholderImage is the reference used when no candidate image exists.
// The renderer cannot load it, so such pages take the gradient fallback.
func placeholderImage(appName string, index int) string {
	query := fmt.Sprintf("%s app page %d", appName, index+1)
	return fmt.Sprintf("/placeholder.svg?height=400&width=300&query=%s", integrations.URLEncode(query))
}
