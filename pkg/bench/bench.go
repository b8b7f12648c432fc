// Package bench times graph generation and BFS queries across graph sizes.
//
// For every size, each run generates a fresh graph at the configured density
// and then answers one shortest-path query from vertex 0 to a random
// vertex. Wall-clock durations are averaged per size. When a fixture
// directory is set, queries run against the graph_<size> edge list instead
// of the freshly generated graph, so every run searches the same graph.
//
// Runs may execute in parallel. Each run derives its own seed from the base
// seed, size and run index, so a report is reproducible regardless of
// scheduling.
package bench

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/randgraph/pkg/edgelist"
	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/gen"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/search"
)

// Config configures a benchmark.
type Config struct {
	Sizes       []int
	Runs        int
	Density     float64
	Parallelism int
	Seed        uint64 // 0 draws a random base seed
	Strategy    gen.Strategy
	FixtureDir  string // optional graph_<size> files for the BFS phase
	Logger      *log.Logger
}

// Event reports a finished run.
type Event struct {
	Size      int
	Run       int
	Completed int // runs finished so far, across all sizes
	Total     int
	Generate  time.Duration
	Search    time.Duration
}

// Result aggregates the runs of one size.
type Result struct {
	Size        int           `json:"size"`
	Runs        int           `json:"runs"`
	Edges       int           `json:"edges"`
	GenerateAvg time.Duration `json:"generate_avg_ns"`
	GenerateMin time.Duration `json:"generate_min_ns"`
	GenerateMax time.Duration `json:"generate_max_ns"`
	SearchAvg   time.Duration `json:"search_avg_ns"`
	SearchMin   time.Duration `json:"search_min_ns"`
	SearchMax   time.Duration `json:"search_max_ns"`
	AvgHops     float64       `json:"avg_hops"`
	Unreachable int           `json:"unreachable"`
}

// Report is the outcome of a benchmark.
type Report struct {
	ID          string        `json:"id"`
	StartedAt   time.Time     `json:"started_at"`
	Duration    time.Duration `json:"duration_ns"`
	Seed        uint64        `json:"seed"`
	Density     float64       `json:"density"`
	Strategy    string        `json:"strategy"`
	Parallelism int           `json:"parallelism"`
	Fixtures    string        `json:"fixtures,omitempty"`
	Results     []Result      `json:"results"`
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

type sample struct {
	generate time.Duration
	search   time.Duration
	edges    int
	hops     int // -1 when unreachable
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if len(c.Sizes) == 0 {
		return errs.New(errs.ErrCodeInvalidInput, "no sizes to benchmark")
	}
	for _, s := range c.Sizes {
		if err := errs.ValidateVertexCount(s); err != nil {
			return err
		}
	}
	if c.Runs < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "runs %d must be at least 1", c.Runs)
	}
	if c.Parallelism < 1 {
		return errs.New(errs.ErrCodeInvalidInput, "parallelism %d must be at least 1", c.Parallelism)
	}
	return errs.ValidateDensity(c.Density)
}

// Run executes the benchmark. progress, if non-nil, is called after every
// run; calls are serialized.
func Run(ctx context.Context, cfg Config, progress func(Event)) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Seed == 0 {
		cfg.Seed = gen.RandomSeed()
	}

	report := &Report{
		ID:          uuid.NewString(),
		StartedAt:   time.Now(),
		Seed:        cfg.Seed,
		Density:     cfg.Density,
		Strategy:    cfg.Strategy.String(),
		Parallelism: cfg.Parallelism,
		Fixtures:    cfg.FixtureDir,
	}

	fixtures, err := loadFixtures(cfg)
	if err != nil {
		return nil, err
	}

	samples := make(map[int][]sample, len(cfg.Sizes))
	for _, size := range cfg.Sizes {
		samples[size] = make([]sample, cfg.Runs)
	}

	total := len(cfg.Sizes) * cfg.Runs
	completed := 0
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Parallelism)

	logger.Info("benchmark started", "id", report.ID, "sizes", cfg.Sizes, "runs", cfg.Runs, "density", cfg.Density, "parallelism", cfg.Parallelism)

	for _, size := range cfg.Sizes {
		for run := range cfg.Runs {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				s, err := runOnce(gctx, cfg, size, run, fixtures[size], logger)
				if err != nil {
					return fmt.Errorf("size %d run %d: %w", size, run, err)
				}
				samples[size][run] = s

				mu.Lock()
				defer mu.Unlock()
				completed++
				if progress != nil {
					progress(Event{
						Size:      size,
						Run:       run,
						Completed: completed,
						Total:     total,
						Generate:  s.generate,
						Search:    s.search,
					})
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, size := range cfg.Sizes {
		report.Results = append(report.Results, summarize(size, samples[size]))
	}
	report.Duration = time.Since(report.StartedAt)
	logger.Info("benchmark finished", "id", report.ID, "duration", report.Duration)
	return report, nil
}

// RunSeed derives the seed of one run from the base seed.
func RunSeed(base uint64, size, run int) uint64 {
	r := rand.New(rand.NewPCG(base, uint64(size)<<32|uint64(run)))
	return r.Uint64() | 1
}

func runOnce(ctx context.Context, cfg Config, size, run int, fixture *graph.Graph, logger *log.Logger) (sample, error) {
	seed := RunSeed(cfg.Seed, size, run)
	generator := gen.New(gen.WithSeed(seed), gen.WithStrategy(cfg.Strategy), gen.WithLogger(logger))

	start := time.Now()
	gr, err := generator.Generate(ctx, size, cfg.Density)
	genTime := time.Since(start)
	if err != nil {
		return sample{}, err
	}

	target := gr
	if fixture != nil {
		target = fixture
	}

	// Destinations come from [0, size-1).
	dest := 0
	if size > 2 {
		dest = rand.New(rand.NewPCG(seed, seed>>1)).IntN(size - 1)
	}

	s := search.NewSearcher(target).WithContext(ctx)
	start = time.Now()
	p, err := s.ShortestPath(0, dest)
	searchTime := time.Since(start)

	hops := p.Hops()
	switch {
	case errors.Is(err, search.ErrNoPath):
		hops = -1
	case err != nil:
		return sample{}, err
	}

	return sample{generate: genTime, search: searchTime, edges: gr.EdgeCount(), hops: hops}, nil
}

func loadFixtures(cfg Config) (map[int]*graph.Graph, error) {
	fixtures := make(map[int]*graph.Graph)
	if cfg.FixtureDir == "" {
		return fixtures, nil
	}
	for _, size := range cfg.Sizes {
		g, err := edgelist.ImportFixture(cfg.FixtureDir, size)
		if err != nil {
			return nil, fmt.Errorf("load fixture %d: %w", size, err)
		}
		fixtures[size] = g
	}
	return fixtures, nil
}

func summarize(size int, samples []sample) Result {
	res := Result{Size: size, Runs: len(samples)}

	gens := make([]time.Duration, len(samples))
	searches := make([]time.Duration, len(samples))
	var genSum, searchSum time.Duration
	hopSum, reached := 0, 0
	for i, s := range samples {
		gens[i], searches[i] = s.generate, s.search
		genSum += s.generate
		searchSum += s.search
		res.Edges = s.edges
		if s.hops < 0 {
			res.Unreachable++
			continue
		}
		hopSum += s.hops
		reached++
	}

	n := time.Duration(len(samples))
	res.GenerateAvg, res.GenerateMin, res.GenerateMax = genSum/n, slices.Min(gens), slices.Max(gens)
	res.SearchAvg, res.SearchMin, res.SearchMax = searchSum/n, slices.Min(searches), slices.Max(searches)
	if reached > 0 {
		res.AvgHops = float64(hopSum) / float64(reached)
	}
	return res
}
