package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/randgraph/pkg/cache"
	"github.com/matzehuels/randgraph/pkg/edgelist"
	"github.com/matzehuels/randgraph/pkg/gen"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/observability"
	"github.com/matzehuels/randgraph/pkg/render/nodelink"
)

const keyTypeGraph = "graph"

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options as long
// as the cache backend is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the expiry of cached edge lists.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLGraph,
	}
}

// Generate builds a graph for opts, consulting the cache for seeded runs.
// Cache failures are logged and never fail the run.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{Seed: opts.Seed}

	var key string
	if opts.Cacheable() {
		key = r.Keyer.GraphKey(opts.GraphKeyOpts())
		if !opts.Refresh {
			if g, ok := r.lookup(ctx, key, opts.Vertices); ok {
				res.Graph = g
				res.CacheHit = true
				res.Duration = time.Since(start)
				return res, nil
			}
		}
	} else {
		res.Seed = gen.RandomSeed()
	}

	edges, err := opts.generator(res.Seed).Edges(ctx, opts.Vertices, opts.Density)
	if err != nil {
		return nil, err
	}
	res.Graph = graph.FromEdges(opts.Vertices, edges)

	if key != "" {
		r.store(ctx, key, edges)
	}

	res.Duration = time.Since(start)
	r.Logger.Info("generated graph",
		"vertices", opts.Vertices,
		"density", opts.Density,
		"edges", len(edges),
		"seed", res.Seed,
		"duration", res.Duration)
	return res, nil
}

// Render draws g in the requested format, highlighting the From→To path
// when one is requested and exists.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, opts RenderOptions) ([]byte, error) {
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	path, err := pathFor(g, opts)
	if err != nil {
		return nil, err
	}
	if opts.From != nil && path == nil {
		r.Logger.Warn("no path to highlight", "from", *opts.From, "to", *opts.To)
	}

	start := time.Now()
	out, err := nodelink.RenderGraph(ctx, g, nodelink.Options{Path: path, ShowDegree: opts.ShowDegree}, opts.Format)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("rendered graph", "format", opts.Format, "bytes", len(out), "duration", time.Since(start))
	return out, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) lookup(ctx context.Context, key string, n int) (*graph.Graph, bool) {
	hooks := observability.Cache()

	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		hooks.OnCacheMiss(ctx, keyTypeGraph)
		return nil, false
	}

	g, err := edgelist.Read(bytes.NewReader(data), n)
	if err != nil {
		// Stale or corrupt entry; regenerate and overwrite.
		r.Logger.Warn("discarding cached edge list", "error", err)
		hooks.OnCacheMiss(ctx, keyTypeGraph)
		return nil, false
	}
	hooks.OnCacheHit(ctx, keyTypeGraph)
	r.Logger.Debug("cache hit", "vertices", n, "edges", g.EdgeCount())
	return g, true
}

func (r *Runner) store(ctx context.Context, key string, edges []graph.Edge) {
	var buf bytes.Buffer
	if err := edgelist.Write(&buf, edges); err != nil {
		r.Logger.Warn("encode edge list for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyTypeGraph, buf.Len())
}
