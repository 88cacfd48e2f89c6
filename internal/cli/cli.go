// Package cli implements the slidecast command-line interface.
//
// This package provides commands for building slide decks (generate, deck),
// rendering pages to images (render), exporting full decks as ZIP archives
// (export), previewing decks over HTTP (serve), and managing the response
// cache (cache). The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/slidecast/slidecast/pkg/buildinfo"
	"github.com/slidecast/slidecast/pkg/cache"
	"github.com/slidecast/slidecast/pkg/config"
	"github.com/slidecast/slidecast/pkg/export"
	"github.com/slidecast/slidecast/pkg/generate"
	"github.com/slidecast/slidecast/pkg/integrations/pollinations"
	"github.com/slidecast/slidecast/pkg/integrations/vectors"
	"github.com/slidecast/slidecast/pkg/render"
)

const (
	// appName is the application name used for directories and display.
	appName = "slidecast"

	// defaultDeckFile is the deck file used when --deck is not given.
	defaultDeckFile = "deck.json"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the loaded
// configuration. A broken config file logs a warning and falls back to
// the defaults rather than failing startup.
func New(w io.Writer, level log.Level) *CLI {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Warnf("Using default configuration: %v", err)
	}

	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "slidecast",
		Short:        "Slidecast builds short-form slide decks for app promotion",
		Long:         `Slidecast is a CLI tool for generating, editing, rendering, and exporting vertical short-form slide decks that promote an app, using strategy-driven content generation.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.deckCommand())
	root.AddCommand(c.strategiesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newGenerator wires the content generator with the configured text and
// asset service clients.
func (c *CLI) newGenerator(ctx context.Context, opts generateOpts) (*generate.Generator, error) {
	backend, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return nil, err
	}

	seed := opts.seed
	if seed == 0 {
		seed = c.Config.Generate.Seed
	}
	var text generate.TextGenerator = pollinations.NewClient(pollinations.Options{
		BaseURL: c.Config.Generate.TextServiceURL,
		Model:   firstNonEmpty(opts.model, c.Config.Generate.Model),
		Seed:    seed,
	})
	temperature := opts.temperature
	if temperature == 0 {
		temperature = c.Config.Generate.Temperature
	}
	if temperature > 0 {
		text = fixedTemperature{inner: text, temperature: temperature}
	}

	assets := vectors.NewClient(backend, c.Config.Cache.TTLOrDefault(cache.DefaultTTL),
		c.Config.Generate.AssetServiceURL)

	return generate.New(text, assets, c.Logger), nil
}

// fixedTemperature overrides the per-call temperature with a configured one.
type fixedTemperature struct {
	inner       generate.TextGenerator
	temperature float64
}

func (f fixedTemperature) Generate(ctx context.Context, prompt string, _ float64) (string, error) {
	return f.inner.Generate(ctx, prompt, f.temperature)
}

// newExporter wires a deck exporter over an HTTP-backed page renderer.
func (c *CLI) newExporter() *export.Exporter {
	renderer := render.NewRenderer(render.NewHTTPLoader(nil))
	return export.NewExporter(renderer, c.renderOptions(), c.Logger)
}

// renderOptions builds render options from the configuration.
func (c *CLI) renderOptions() render.Options {
	return render.Options{
		Width:   c.Config.Render.Width,
		Height:  c.Config.Render.Height,
		Quality: c.Config.Render.Quality,
	}
}

// newCache creates the cache backend selected in the configuration.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheFile:
		dir := c.Config.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		return cache.NewFileCache(dir)
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisAddr, appName)
	default:
		return cache.NewMemoryCache(c.Config.Cache.MaxEntries), nil
	}
}

// cacheDir returns the cache directory using XDG standard (~/.cache/slidecast/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
