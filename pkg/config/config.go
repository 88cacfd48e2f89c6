// Package config loads slidecast settings from an optional TOML file.
//
// Configuration is looked up at the path given by SLIDECAST_CONFIG, then at
// slidecast.toml in the working directory, then at
// $XDG_CONFIG_HOME/slidecast/config.toml. A missing file is not an error;
// defaults apply. Command-line flags override file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Cache backend names accepted in the [cache] section.
const (
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
	CacheNone   = "none"
)

// Config holds all file-configurable settings.
type Config struct {
	Generate GenerateConfig `toml:"generate"`
	Render   RenderConfig   `toml:"render"`
	Cache    CacheConfig    `toml:"cache"`
}

// GenerateConfig configures the content generation services. A zero
// Temperature keeps the generator's built-in per-prompt temperatures.
type GenerateConfig struct {
	TextServiceURL  string  `toml:"text_service_url"`
	AssetServiceURL string  `toml:"asset_service_url"`
	Model           string  `toml:"model"`
	Seed            int     `toml:"seed"`
	Temperature     float64 `toml:"temperature"`
}

// RenderConfig configures image output.
type RenderConfig struct {
	Width   int     `toml:"width"`
	Height  int     `toml:"height"`
	Quality float64 `toml:"quality"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend    string   `toml:"backend"`
	Dir        string   `toml:"dir"`
	TTL        duration `toml:"ttl"`
	MaxEntries int      `toml:"max_entries"`
	RedisAddr  string   `toml:"redis_addr"`
}

// duration lets TTL values be written as "24h" in the TOML file.
type duration time.Duration

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = duration(v)
	return nil
}

// TTLOrDefault returns the configured cache TTL, or fallback when unset.
func (c CacheConfig) TTLOrDefault(fallback time.Duration) time.Duration {
	if c.TTL == 0 {
		return fallback
	}
	return time.Duration(c.TTL)
}

// Default returns the built-in settings used when no file is present.
func Default() Config {
	return Config{
		Render: RenderConfig{
			Width:   1080,
			Height:  1920,
			Quality: 0.95,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			MaxEntries: 256,
			RedisAddr:  "localhost:6379",
		},
	}
}

// Load reads configuration from the first location that exists and merges
// it over the defaults. It returns the defaults when no file is found.
func Load() (Config, error) {
	for _, path := range searchPaths() {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return Default(), nil
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheFile, CacheRedis, CacheNone:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Render.Width < 0 || c.Render.Height < 0 {
		return fmt.Errorf("negative render dimensions %dx%d", c.Render.Width, c.Render.Height)
	}
	if c.Render.Quality < 0 || c.Render.Quality > 1 {
		return fmt.Errorf("render quality %v outside (0,1]", c.Render.Quality)
	}
	return nil
}

func searchPaths() []string {
	paths := []string{
		os.Getenv("SLIDECAST_CONFIG"),
		"slidecast.toml",
	}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "slidecast", "config.toml"))
	}
	return paths
}
