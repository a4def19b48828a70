// Package config loads the optional ttm configuration file.
//
// The file is TOML with three sections:
//
//	[layout]
//	grid_spacing = 40
//	node_size = 80
//	unit = "grid"
//
//	[cache]
//	backend = "redis"          # none, file or redis
//	redis_addr = "localhost:6379"
//
//	[server]
//	addr = ":8080"
//	read_timeout = "10s"
//
// Missing fields keep their defaults; unknown keys are an error.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/cache"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/layout"
	"github.com/TobiasM95/WoW-Talent-Tree-Manager/pkg/pipeline"
)

// AppName names the config and cache directories.
const AppName = "ttm"

// Cache backends.
const (
	BackendNone  = "none"
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config is the whole configuration file.
type Config struct {
	Layout LayoutConfig `toml:"layout"`
	Cache  CacheConfig  `toml:"cache"`
	Server ServerConfig `toml:"server"`
}

// LayoutConfig holds default layout settings.
type LayoutConfig struct {
	GridSpacing   float64 `toml:"grid_spacing"`
	NodeSize      float64 `toml:"node_size"`
	Unit          string  `toml:"unit"`
	DividerMargin float64 `toml:"divider_margin"`
	DividerOffset float64 `toml:"divider_offset"`
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend       string `toml:"backend"`
	Dir           string `toml:"dir"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	Prefix        string `toml:"prefix"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr         string        `toml:"addr"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
}

// Default returns the built-in configuration.
func Default() Config {
	s := layout.DefaultSettings()
	return Config{
		Layout: LayoutConfig{
			GridSpacing:   s.GridSpacing,
			NodeSize:      s.NodeSize,
			Unit:          string(s.Unit),
			DividerMargin: s.DividerMargin,
			DividerOffset: s.DividerOffset,
		},
		Cache: CacheConfig{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			Prefix:    "ttm:",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 4 << 20,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/ttm/config.toml or its platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName, "config.toml"), nil
}

// DefaultCacheDir returns ~/.cache/ttm.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}

// Load reads the file at path over the defaults. An empty path loads
// DefaultPath if it exists and the defaults otherwise; an explicit path
// must exist.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	if _, err := c.Settings(); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendNone, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q (want none, file or redis)", c.Cache.Backend)
	}
	if c.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative")
	}
	return nil
}

// Settings returns the layout settings.
func (c Config) Settings() (layout.Settings, error) {
	opts := c.PipelineOptions()
	return opts.Settings()
}

// PipelineOptions returns pipeline options seeded from the layout section.
func (c Config) PipelineOptions() pipeline.Options {
	margin, offset := c.Layout.DividerMargin, c.Layout.DividerOffset
	return pipeline.Options{
		GridSpacing:   c.Layout.GridSpacing,
		NodeSize:      c.Layout.NodeSize,
		Unit:          c.Layout.Unit,
		DividerMargin: &margin,
		DividerOffset: &offset,
	}
}

// Keyer returns the key generator for the configured backend. File entries
// are scoped by Prefix; Redis applies Prefix inside the backend.
func (c CacheConfig) Keyer() cache.Keyer {
	if c.Backend == BackendFile && c.Prefix != "" {
		return cache.NewScopedKeyer(nil, c.Prefix)
	}
	return cache.NewDefaultKeyer()
}

// OpenCache opens the configured cache backend. Redis connectivity is
// checked with a ping.
func (c CacheConfig) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Backend {
	case BackendNone:
		return cache.NewNullCache(), nil
	case BackendRedis:
		rc := cache.NewRedisCache(c.RedisAddr, c.RedisPassword, c.RedisDB, cache.WithRedisPrefix(c.Prefix))
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, err
		}
		return rc, nil
	default:
		dir := c.Dir
		if dir == "" {
			d, err := DefaultCacheDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}
