// Package pipeline runs the generate → search → render flow shared by the
// CLI and the HTTP server.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Generate: build a random connected graph, reusing a cached edge list
//     when the run is fully seeded
//  2. Search: answer a shortest-path query on the graph
//  3. Render: draw the graph as DOT, SVG or PNG with the path highlighted
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Generate(ctx, pipeline.Options{
//	    Vertices: 1000,
//	    Density:  0.02,
//	    Seed:     42,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Graph.EdgeCount(), res.CacheHit)
package pipeline

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/randgraph/pkg/cache"
	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/gen"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/render/nodelink"
	"github.com/matzehuels/randgraph/pkg/search"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultDensity is the density the benchmark suite has always used.
	DefaultDensity = 0.02

	// DefaultStrategy is the completion strategy name used when none is set.
	DefaultStrategy = "auto"

	// DefaultFormat is the default render format.
	DefaultFormat = nodelink.FormatSVG
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	nodelink.FormatDOT: true,
	nodelink.FormatSVG: true,
	nodelink.FormatPNG: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures a generation run.
// This struct supports JSON serialization for API requests.
type Options struct {
	Vertices    int     `json:"vertices"`
	Density     float64 `json:"density"`
	Seed        uint64  `json:"seed,omitempty"` // 0 draws a random seed and skips the cache
	Strategy    string  `json:"strategy,omitempty"`
	MaxAttempts int     `json:"max_attempts,omitempty"`
	Refresh     bool    `json:"refresh,omitempty"` // regenerate even on a cache hit

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	strategy  gen.Strategy
	validated bool
}

// Result contains the outputs of a generation run.
type Result struct {
	// Graph is the generated graph.
	Graph *graph.Graph

	// Seed is the seed actually used, so random runs can be replayed.
	Seed uint64

	// CacheHit reports whether the edge list came from the cache.
	CacheHit bool

	// Duration is the wall-clock time of the run, cache lookups included.
	Duration time.Duration
}

// RenderOptions configures the render stage.
type RenderOptions struct {
	// From and To select a path to highlight. Both nil disables the path.
	From, To *int

	// Format is one of dot, svg or png.
	Format string

	// ShowDegree adds vertex degrees to the labels.
	ShowDegree bool
}

// =============================================================================
// Validation
// =============================================================================

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeUnsupported, "invalid format %q (must be one of: dot, svg, png)", format)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Density == 0 {
		o.Density = DefaultDensity
	}
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if err := errs.ValidateVertexCount(o.Vertices); err != nil {
		return err
	}
	if err := errs.ValidateDensity(o.Density); err != nil {
		return err
	}
	s, err := gen.ParseStrategy(o.Strategy)
	if err != nil {
		return err
	}
	if o.MaxAttempts < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "max_attempts %d must not be negative", o.MaxAttempts)
	}
	o.strategy = s
	o.Strategy = s.String()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Cacheable reports whether the run is deterministic and may use the cache.
func (o *Options) Cacheable() bool {
	return o.Seed != 0
}

// GraphKeyOpts returns cache key options for the run.
func (o *Options) GraphKeyOpts() cache.GraphKeyOpts {
	return cache.GraphKeyOpts{
		Vertices: o.Vertices,
		Density:  o.Density,
		Seed:     o.Seed,
		Strategy: o.Strategy,
	}
}

// generator builds a Generator for the options and the given seed.
func (o *Options) generator(seed uint64) *gen.Generator {
	return gen.New(
		gen.WithSeed(seed),
		gen.WithStrategy(o.strategy),
		gen.WithMaxAttempts(o.MaxAttempts),
		gen.WithLogger(o.Logger),
	)
}

// ParsePathQuery turns optional from/to vertices into RenderOptions fields,
// requiring both or neither.
func ParsePathQuery(from, to int, fromSet, toSet bool) (*int, *int, error) {
	if fromSet != toSet {
		return nil, nil, errs.New(errs.ErrCodeInvalidInput, "from and to must be given together")
	}
	if !fromSet {
		return nil, nil, nil
	}
	return &from, &to, nil
}

// pathFor resolves the highlighted path of opts on g. A missing path is not
// an error: the graph is rendered without highlight.
func pathFor(g *graph.Graph, opts RenderOptions) (search.Path, error) {
	if opts.From == nil || opts.To == nil {
		return nil, nil
	}
	p, err := search.ShortestPath(g, *opts.From, *opts.To)
	if errors.Is(err, search.ErrNoPath) {
		return nil, nil
	}
	return p, err
}
