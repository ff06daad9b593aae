// Package config loads netviz settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/netviz/config.toml (or
// ~/.config/netviz/config.toml) unless a path is given explicitly:
//
//	[output]
//	path = "graph_files/graph.html"
//	formats = ["html", "svg"]
//	display = "file"          # or "interactive"
//	addr = "127.0.0.1:8080"
//	title = "Service map"
//
//	[render]
//	seed = 42                 # 0 draws fresh colors every run
//	detailed = true           # node attributes in SVG labels
//
//	[cache]
//	backend = "file"          # "file", "redis" or "none"
//	ttl = "168h"
//	redis_addr = "localhost:6379"
//
// Command-line flags override the file; the file overrides built-in
// defaults.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/netviz/pkg/errors"
	"github.com/matzehuels/netviz/pkg/pipeline"
)

const appName = "netviz"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config holds netviz configuration.
type Config struct {
	Output OutputConfig `toml:"output"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
}

// OutputConfig controls where and how outputs are delivered.
type OutputConfig struct {
	Path    string   `toml:"path"`
	Formats []string `toml:"formats"`
	Display string   `toml:"display"`
	Addr    string   `toml:"addr"`
	Title   string   `toml:"title"`
}

// RenderConfig controls conversion.
type RenderConfig struct {
	Seed     uint64  `toml:"seed"`
	Detailed bool    `toml:"detailed"`
	Scale    float64 `toml:"scale"` // PNG zoom factor
}

// CacheConfig selects and configures the SVG render cache.
type CacheConfig struct {
	Backend   string        `toml:"backend"`
	Dir       string        `toml:"dir,omitempty"` // file backend; defaults to the XDG cache dir
	TTL       time.Duration `toml:"ttl"`
	Namespace string        `toml:"namespace,omitempty"`

	RedisAddr     string `toml:"redis_addr,omitempty"`
	RedisPassword string `toml:"redis_password,omitempty"`
	RedisDB       int    `toml:"redis_db,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Path:    pipeline.DefaultOutputPath,
			Formats: []string{pipeline.FormatHTML},
			Display: pipeline.DisplayFile,
			Addr:    pipeline.DefaultAddr,
			Title:   pipeline.DefaultTitle,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			TTL:       pipeline.DefaultCacheTTL,
			RedisAddr: "localhost:6379",
		},
	}
}

// ConfigDir returns the netviz config directory path.
func ConfigDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, appName)
}

// CacheDir returns the netviz cache directory using the XDG standard
// (~/.cache/netviz/).
func CacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file at path, or at [DefaultPath] when path is
// empty. A missing file yields the defaults. Malformed TOML, unknown keys
// and invalid values are reported as INVALID_CONFIG.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}
	cfg := Default()

	md, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	if err := cfg.Validate(); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidConfig, err, "%s", path)
	}
	return cfg, nil
}

// Save writes the config to path, or to [DefaultPath] when path is empty.
func Save(cfg *Config, path string) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}

// Validate checks formats, display mode and cache backend.
func (c *Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return err
	}
	if c.Output.Display != "" {
		if err := pipeline.ValidateDisplay(c.Output.Display); err != nil {
			return err
		}
	}
	switch c.Cache.Backend {
	case "", BackendFile, BackendRedis, BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "invalid cache backend: %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.Namespace != "" {
		if err := errs.ValidatePath(c.Cache.Namespace); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "invalid cache namespace")
		}
	}
	if c.Render.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "render scale must not be negative")
	}
	if c.Cache.TTL < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache ttl must not be negative")
	}
	return nil
}

// PipelineOptions returns pipeline options populated from the config.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		OutputPath: c.Output.Path,
		Formats:    append([]string(nil), c.Output.Formats...),
		Display:    c.Output.Display,
		Addr:       c.Output.Addr,
		Title:      c.Output.Title,
		Seed:       c.Render.Seed,
		Detailed:   c.Render.Detailed,
		Scale:      c.Render.Scale,
		CacheTTL:   c.Cache.TTL,
	}
}
