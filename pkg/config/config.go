// Package config loads randgraph settings from a TOML file.
//
// The default location is $XDG_CONFIG_HOME/randgraph/config.toml, falling
// back to ~/.config/randgraph/config.toml. A missing file is not an error:
// [Default] values apply. Command-line flags override file values, which
// override the defaults.
//
//	[generate]
//	density = 0.02
//	seed = 0          # 0 = random
//	strategy = "auto"
//
//	[bench]
//	sizes = [100, 1000, 10000]
//	runs = 10
//
//	[cache]
//	backend = "file"  # file | redis | none
//	ttl = "24h"
//
//	[server]
//	addr = ":8080"
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/gen"
)

const appName = "randgraph"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Generate Generate `toml:"generate"`
	Bench    Bench    `toml:"bench"`
	Cache    Cache    `toml:"cache"`
	Server   Server   `toml:"server"`
}

// Generate holds defaults for graph generation.
type Generate struct {
	Density     float64 `toml:"density"`
	Seed        uint64  `toml:"seed"`
	Strategy    string  `toml:"strategy"`
	MaxAttempts int     `toml:"max_attempts"`
}

// Bench holds defaults for the benchmark harness.
type Bench struct {
	Sizes       []int   `toml:"sizes"`
	Runs        int     `toml:"runs"`
	Density     float64 `toml:"density"`
	Parallelism int     `toml:"parallelism"`
}

// Cache selects and configures the cache backend.
type Cache struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	RedisDB   int      `toml:"redis_db"`
	TTL       Duration `toml:"ttl"`
}

// Server configures the HTTP API.
type Server struct {
	Addr string `toml:"addr"`

	// MaxVertices caps the vertex count a single create request may ask for.
	MaxVertices int `toml:"max_vertices"`
}

// Duration is a time.Duration written as a Go duration string ("24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generate: Generate{
			Density:  0.02,
			Strategy: "auto",
		},
		Bench: Bench{
			Sizes:       []int{100, 1000, 10000, 100000},
			Runs:        10,
			Density:     0.02,
			Parallelism: 1,
		},
		Cache: Cache{
			Backend:   BackendFile,
			RedisAddr: "localhost:6379",
			TTL:       Duration{24 * time.Hour},
		},
		Server: Server{
			Addr:        ":8080",
			MaxVertices: 100000,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		return filepath.Join(home, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// Load reads the config at path on top of Default. An empty path means
// DefaultPath. A missing file at the default path yields the defaults; a
// missing file at an explicit path is an error.
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

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return cfg, errs.Wrap(errs.ErrCodeFileNotFound, err, "config %s", path)
			}
			return Default(), nil
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errs.New(errs.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := errs.ValidateDensity(c.Generate.Density); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "generate.density")
	}
	if _, err := gen.ParseStrategy(c.Generate.Strategy); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "generate.strategy")
	}
	if c.Generate.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "generate.max_attempts must not be negative")
	}

	if len(c.Bench.Sizes) == 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "bench.sizes must not be empty")
	}
	for _, s := range c.Bench.Sizes {
		if err := errs.ValidateVertexCount(s); err != nil {
			return errs.Wrap(errs.ErrCodeInvalidConfig, err, "bench.sizes")
		}
	}
	if c.Bench.Runs < 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "bench.runs must be at least 1")
	}
	if err := errs.ValidateDensity(c.Bench.Density); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "bench.density")
	}
	if c.Bench.Parallelism < 1 {
		return errs.New(errs.ErrCodeInvalidConfig, "bench.parallelism must be at least 1")
	}

	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisAddr == "" {
			return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "cache.backend %q (must be one of: file, redis, none)", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	if c.Server.Addr == "" {
		return errs.New(errs.ErrCodeInvalidConfig, "server.addr must not be empty")
	}
	if err := errs.ValidateVertexCount(c.Server.MaxVertices); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "server.max_vertices")
	}
	return nil
}
