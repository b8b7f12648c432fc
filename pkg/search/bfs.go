package search

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/bits-and-blooms/bitset"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/observability"
)

// ErrNoPath is returned when the destination cannot be reached from the
// start vertex.
var ErrNoPath = errors.New("no path")

// Path is an ordered list of vertices from start to destination, inclusive.
type Path []graph.Vertex

// Hops returns the number of edges on the path.
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// ShortestPath returns a shortest path from start to dest.
// It returns ErrNoPath when dest is unreachable and an OUT_OF_RANGE error
// when either vertex is not in g.
func ShortestPath(g *graph.Graph, start, dest graph.Vertex) (Path, error) {
	return NewSearcher(g).ShortestPath(start, dest)
}

// Searcher runs repeated queries against one graph and reuses its scratch
// space between them. It is not safe for concurrent use.
type Searcher struct {
	g       *graph.Graph
	visited *bitset.BitSet
	parent  []int
	queue   []int
	ctx     context.Context

	// Visited counts vertices marked by the last query.
	Visited int
}

// NewSearcher returns a Searcher for g.
func NewSearcher(g *graph.Graph) *Searcher {
	n := g.Size()
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	return &Searcher{
		g:       g,
		visited: bitset.New(uint(n)),
		parent:  parent,
		queue:   make([]int, 0, n),
		ctx:     context.Background(),
	}
}

// WithContext sets the context passed to search hooks.
func (s *Searcher) WithContext(ctx context.Context) *Searcher {
	s.ctx = ctx
	return s
}

// ShortestPath returns a shortest path from start to dest in the Searcher's
// graph. See the package-level ShortestPath.
func (s *Searcher) ShortestPath(start, dest graph.Vertex) (Path, error) {
	n := s.g.Size()
	if err := errs.ValidateVertex(start, n); err != nil {
		return nil, err
	}
	if err := errs.ValidateVertex(dest, n); err != nil {
		return nil, err
	}

	began := time.Now()
	s.reset()

	found := s.run(start, dest)

	var path Path
	hops := -1
	if found {
		for v := dest; v != -1; v = s.parent[v] {
			path = append(path, v)
		}
		slices.Reverse(path)
		hops = path.Hops()
	}
	observability.Search().OnSearch(s.ctx, start, dest, hops, s.Visited, time.Since(began))

	if !found {
		return nil, ErrNoPath
	}
	return path, nil
}

// run performs the BFS from start, stopping early at dest when dest >= 0.
func (s *Searcher) run(start, dest int) bool {
	s.visited.Set(uint(start))
	s.Visited = 1
	s.queue = append(s.queue, start)

	for head := 0; head < len(s.queue); head++ {
		current := s.queue[head]
		if current == dest {
			return true
		}
		for _, next := range s.g.Neighbors(current) {
			if s.visited.Test(uint(next)) {
				continue
			}
			s.visited.Set(uint(next))
			s.parent[next] = current
			s.queue = append(s.queue, next)
			s.Visited++
		}
	}
	return false
}

// reset clears only the entries the previous query touched.
func (s *Searcher) reset() {
	for _, v := range s.queue {
		s.parent[v] = -1
	}
	s.visited.ClearAll()
	s.queue = s.queue[:0]
	s.Visited = 0
}

// Distances returns the hop distance from src to every vertex, with -1 for
// vertices src cannot reach.
func Distances(g *graph.Graph, src graph.Vertex) ([]int, error) {
	if err := errs.ValidateVertex(src, g.Size()); err != nil {
		return nil, err
	}

	s := NewSearcher(g)
	s.run(src, -1)

	dist := make([]int, g.Size())
	for i := range dist {
		dist[i] = -1
	}
	for _, v := range s.queue {
		if v == src {
			dist[v] = 0
			continue
		}
		dist[v] = dist[s.parent[v]] + 1
	}
	return dist, nil
}

// Eccentricity returns the largest finite distance from src and the number
// of vertices reachable from it, src included.
func Eccentricity(g *graph.Graph, src graph.Vertex) (ecc, reached int, err error) {
	dist, err := Distances(g, src)
	if err != nil {
		return 0, 0, err
	}
	for _, d := range dist {
		if d >= 0 {
			reached++
			ecc = max(ecc, d)
		}
	}
	return ecc, reached, nil
}
