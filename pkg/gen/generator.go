package gen

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/observability"
)

// Generator produces random connected graphs.
//
// A Generator owns its random source and is not safe for concurrent use.
// Parallel callers should build one Generator per goroutine.
type Generator struct {
	src         Source
	logger      *log.Logger
	strategy    Strategy
	maxAttempts int
}

// Option configures a Generator.
type Option func(*Generator)

// WithSource sets the random source. It panics if src is nil.
func WithSource(src Source) Option {
	if src == nil {
		panic("gen: WithSource(nil)")
	}
	return func(g *Generator) { g.src = src }
}

// WithSeed uses a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.src = NewSource(seed) }
}

// WithLogger sets the logger for warnings and debug output.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithStrategy selects the completion strategy.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) { g.strategy = s }
}

// WithMaxAttempts caps rejection-sampling draws. Zero restores the default.
func WithMaxAttempts(n int) Option {
	return func(g *Generator) { g.maxAttempts = n }
}

// New returns a Generator. Without WithSource or WithSeed it draws a random
// seed.
func New(opts ...Option) *Generator {
	g := &Generator{logger: log.Default()}
	for _, opt := range opts {
		opt(g)
	}
	if g.src == nil {
		g.src = NewSource(RandomSeed())
	}
	return g
}

// Edges returns the edge list of a random connected graph: the sorted
// spanning tree followed by the sampled extra edges.
func (g *Generator) Edges(ctx context.Context, n int, density float64) ([]graph.Edge, error) {
	if err := errs.ValidateVertexCount(n); err != nil {
		return nil, err
	}
	if err := errs.ValidateDensity(density); err != nil {
		return nil, err
	}

	hooks := observability.Generate()

	hooks.OnTreeStart(ctx, n)
	start := time.Now()
	tree, err := SpanningTree(n, g.src)
	hooks.OnTreeComplete(ctx, n, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("spanning tree decoded", "vertices", n, "edges", len(tree), "duration", time.Since(start))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	extra := TargetEdges(n, density) - len(tree)
	hooks.OnCompleteStart(ctx, g.strategy.String(), extra)
	start = time.Now()
	res, err := Complete(n, tree, density, g.src, CompleteOptions{
		Strategy:    g.strategy,
		MaxAttempts: g.maxAttempts,
		Logger:      g.logger,
	})
	hooks.OnCompleteDone(ctx, res.Strategy.String(), res.Added, res.Attempts, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	g.logger.Debug("density reached",
		"vertices", n, "density", density, "edges", len(res.Edges),
		"strategy", res.Strategy, "attempts", res.Attempts, "duration", time.Since(start))

	return res.Edges, nil
}

// Generate returns a random connected graph with n vertices and
// max(n−1, floor(density · n·(n−1)/2)) edges.
func (g *Generator) Generate(ctx context.Context, n int, density float64) (*graph.Graph, error) {
	edges, err := g.Edges(ctx, n, density)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return graph.FromEdges(n, edges), nil
}
