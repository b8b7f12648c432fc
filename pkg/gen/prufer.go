package gen

import (
	"slices"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
)

// RandomPrufer draws n−2 labels uniformly from [0, n) and shuffles them with
// the same source. n must be at least 2.
func RandomPrufer(n int, src Source) []int {
	seq := make([]int, n-2)
	for i := range seq {
		seq[i] = src.IntN(n)
	}
	src.Shuffle(len(seq), func(i, j int) { seq[i], seq[j] = seq[j], seq[i] })
	return seq
}

// SpanningTree returns the n−1 edges of a uniformly random labeled tree on n
// vertices, sorted lexicographically.
func SpanningTree(n int, src Source) ([]graph.Edge, error) {
	if err := errs.ValidateVertexCount(n); err != nil {
		return nil, err
	}
	edges, err := DecodePrufer(n, RandomPrufer(n, src))
	if err != nil {
		return nil, err
	}
	slices.SortFunc(edges, graph.Edge.Compare)
	return edges, nil
}

// DecodePrufer decodes seq into the n−1 edges of the tree it encodes.
//
// Each entry is joined to the smallest current leaf, emitted as
// (leaf, entry); the two vertices left at the end form the final edge with
// the smaller id first. The leaf search uses a cursor that only moves
// forward, which gives the same tree as rescanning from vertex 0 each step.
func DecodePrufer(n int, seq []int) ([]graph.Edge, error) {
	if n < errs.MinVertices {
		return nil, errs.New(errs.ErrCodeInvalidVertexCount, "vertex count %d < %d", n, errs.MinVertices)
	}
	if len(seq) != n-2 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "prufer sequence has %d labels, want %d", len(seq), n-2)
	}

	degree := make([]int, n)
	for i := range degree {
		degree[i] = 1
	}
	for i, v := range seq {
		if v < 0 || v >= n {
			return nil, errs.New(errs.ErrCodeOutOfRange, "prufer label %d at position %d out of range [0, %d)", v, i, n)
		}
		degree[v]++
	}

	edges := make([]graph.Edge, 0, n-1)

	cursor := 0
	for degree[cursor] != 1 {
		cursor++
	}
	leaf := cursor

	for _, v := range seq {
		edges = append(edges, graph.Edge{U: leaf, V: v})
		degree[leaf]--
		degree[v]--

		// v just became a leaf below the cursor: it is the smallest one.
		if degree[v] == 1 && v < cursor {
			leaf = v
			continue
		}
		cursor++
		for degree[cursor] != 1 {
			cursor++
		}
		leaf = cursor
	}

	// The largest vertex is never the smallest leaf while two or more
	// remain, so it is always one of the final pair.
	edges = append(edges, graph.Edge{U: leaf, V: n - 1})
	return edges, nil
}
