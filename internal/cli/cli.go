// Package cli implements the randgraph command-line interface.
//
// # Commands
//
//   - generate: build a random connected graph and write its edge list
//   - path: shortest path between two vertices of an edge-list file
//   - bench: time generation and BFS across graph sizes
//   - fixtures: write graph_<size> edge lists for repeatable benchmarks
//   - render: draw an edge-list file as DOT, SVG or PNG
//   - serve: run the HTTP API
//   - cache: inspect or clear the edge-list cache
//
// # Configuration
//
// Settings come from built-in defaults, then the TOML config file
// ($XDG_CONFIG_HOME/randgraph/config.toml or --config), then flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// turns on per-phase timing from the generation, search and cache hooks.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/randgraph/pkg/buildinfo"
	"github.com/matzehuels/randgraph/pkg/cache"
	"github.com/matzehuels/randgraph/pkg/config"
	"github.com/matzehuels/randgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "randgraph"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a CLI logging to w at level, with the built-in configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Random connected graphs and BFS shortest paths",
		Long: `randgraph generates random connected undirected graphs of a given
density from random Prüfer sequences, answers shortest-path queries on them
and benchmarks both across graph sizes.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/randgraph/config.toml)")
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.pathCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.fixturesCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config
// and registers the logging hooks.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	registerLogHooks(c.Logger)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache. A
// non-empty scope prefixes every cache key.
func (c *CLI) newRunner(ctx context.Context, noCache bool, scope string) *pipeline.Runner {
	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if scope != "" {
		keyer = cache.Scope(keyer, scope)
	}
	r := pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
	if ttl := c.Config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r
}

// newCache opens the configured backend. A backend that cannot be opened
// degrades to no caching with a warning.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache()
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:   c.Config.Cache.RedisAddr,
			DB:     c.Config.Cache.RedisDB,
			Prefix: appName + ":",
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "addr", c.Config.Cache.RedisAddr, "error", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		fc, err := c.fileCache()
		if err != nil {
			c.Logger.Warn("file cache unavailable, continuing without cache", "error", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

func (c *CLI) fileCache() (*cache.FileCache, error) {
	dir, err := c.cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, defaulting to the XDG
// location (~/.cache/randgraph/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
