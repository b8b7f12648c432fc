package gen

import (
	"fmt"
	"math"
	"strings"

	"github.com/bits-and-blooms/bitset"
	"github.com/charmbracelet/log"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
)

// Strategy selects how Complete samples extra edges.
type Strategy int

const (
	// StrategyAuto uses rejection while at most half of the free pairs are
	// needed and complement otherwise.
	StrategyAuto Strategy = iota
	// StrategyRejection draws random pairs and discards self loops and
	// duplicates, up to a fixed number of draws.
	StrategyRejection
	// StrategyComplement enumerates every free pair and takes a random subset.
	StrategyComplement
)

var strategyNames = map[Strategy]string{
	StrategyAuto:       "auto",
	StrategyRejection:  "rejection",
	StrategyComplement: "complement",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy converts a strategy name ("auto", "rejection",
// "complement") into a Strategy. Matching is case-insensitive.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(name, n) {
			return s, nil
		}
	}
	return StrategyAuto, errs.New(errs.ErrCodeInvalidInput, "unknown strategy %q (want auto, rejection or complement)", name)
}

// CompleteOptions configures Complete. The zero value is usable.
type CompleteOptions struct {
	Strategy Strategy
	// MaxAttempts caps rejection draws. Zero means 64·extra + 1024.
	MaxAttempts int
	// Logger receives the under-density warning. Nil means log.Default().
	Logger *log.Logger
}

// CompleteResult describes a finished completion.
type CompleteResult struct {
	// Edges holds the input edges followed by the sampled ones.
	Edges []graph.Edge
	// Target is floor(density · n·(n−1)/2).
	Target int
	// Added is the number of sampled edges.
	Added int
	// Attempts counts pair draws (rejection) or free pairs scanned (complement).
	Attempts int
	// Strategy is the strategy that actually ran.
	Strategy Strategy
}

// TargetEdges returns floor(density · n·(n−1)/2).
func TargetEdges(n int, density float64) int {
	total := NewIndexer(n).Size()
	return int(math.Floor(density * float64(total)))
}

// Complete extends base with random edges until the graph on n vertices
// holds TargetEdges(n, density) edges. base is typically a spanning tree and
// must not contain duplicates.
//
// If base already meets or exceeds the target, a warning is logged and base
// is returned unchanged.
func Complete(n int, base []graph.Edge, density float64, src Source, opts CompleteOptions) (CompleteResult, error) {
	if err := errs.ValidateVertexCount(n); err != nil {
		return CompleteResult{}, err
	}
	if err := errs.ValidateDensity(density); err != nil {
		return CompleteResult{}, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	ix := NewIndexer(n)
	total := ix.Size()
	target := TargetEdges(n, density)
	extra := target - len(base)

	res := CompleteResult{Target: target, Strategy: opts.Strategy}

	present := bitset.New(uint(total))
	for _, e := range base {
		i := uint(ix.Index(e.U, e.V))
		if present.Test(i) {
			return CompleteResult{}, errs.New(errs.ErrCodeInvalidInput, "duplicate edge %d-%d in base", e.U, e.V)
		}
		present.Set(i)
	}

	if extra <= 0 {
		if extra < 0 {
			logger.Warn("density below spanning tree, no edges added",
				"vertices", n, "density", density, "target", target, "edges", len(base))
		}
		res.Edges = base
		return res, nil
	}

	free := total - len(base)
	if extra > free {
		return CompleteResult{}, errs.New(errs.ErrCodeConstructFailed, "need %d extra edges but only %d pairs are free", extra, free)
	}

	if res.Strategy == StrategyAuto {
		res.Strategy = StrategyComplement
		if 2*extra <= free {
			res.Strategy = StrategyRejection
		}
	}

	edges := make([]graph.Edge, len(base), len(base)+extra)
	copy(edges, base)

	var err error
	switch res.Strategy {
	case StrategyRejection:
		limit := opts.MaxAttempts
		if limit <= 0 {
			limit = 64*extra + 1024
		}
		edges, res.Attempts, err = sampleRejection(ix, present, edges, extra, limit, src)
	case StrategyComplement:
		edges, res.Attempts = sampleComplement(ix, present, edges, extra, src)
	default:
		return CompleteResult{}, errs.New(errs.ErrCodeInvalidInput, "unknown strategy %v", res.Strategy)
	}
	if err != nil {
		return CompleteResult{}, err
	}

	res.Edges = edges
	res.Added = len(edges) - len(base)
	return res, nil
}

func sampleRejection(ix Indexer, present *bitset.BitSet, edges []graph.Edge, extra, limit int, src Source) ([]graph.Edge, int, error) {
	n := ix.N()
	added, attempts := 0, 0
	for added < extra {
		if attempts == limit {
			return nil, attempts, errs.New(errs.ErrCodeConstructFailed,
				"rejection sampling gave up after %d draws with %d of %d extra edges", attempts, added, extra)
		}
		attempts++

		u, v := src.IntN(n), src.IntN(n)
		if u == v {
			continue
		}
		i := uint(ix.Index(u, v))
		if present.Test(i) {
			continue
		}
		present.Set(i)
		edges = append(edges, graph.Edge{U: u, V: v})
		added++
	}
	return edges, attempts, nil
}

func sampleComplement(ix Indexer, present *bitset.BitSet, edges []graph.Edge, extra int, src Source) ([]graph.Edge, int) {
	total := uint(ix.Size())
	pool := make([]int, 0, int(total-present.Count()))
	for i, ok := present.NextClear(0); ok && i < total; i, ok = present.NextClear(i + 1) {
		pool = append(pool, int(i))
	}

	// Partial Fisher–Yates: the first extra slots end up a uniform sample.
	for k := range extra {
		j := k + src.IntN(len(pool)-k)
		pool[k], pool[j] = pool[j], pool[k]

		present.Set(uint(pool[k]))
		a, b := ix.Pair(pool[k])
		edges = append(edges, graph.Edge{U: a, V: b})
	}
	return edges, len(pool)
}
