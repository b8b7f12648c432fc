package graph

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	errs "github.com/matzehuels/randgraph/pkg/errors"
)

// Graph is an undirected graph stored as adjacency lists.
// The zero value is an empty graph with no vertices.
type Graph struct {
	adj   [][]int
	edges []Edge
}

// New creates a graph with n isolated vertices.
func New(n int) *Graph {
	if n < 0 {
		panic(fmt.Sprintf("graph: negative vertex count %d", n))
	}
	return &Graph{adj: make([][]int, n)}
}

// FromEdges creates a graph with n vertices and adds every edge in order.
func FromEdges(n int, edges []Edge) *Graph {
	g := New(n)
	g.edges = make([]Edge, 0, len(edges))
	for _, e := range edges {
		g.AddEdge(e.U, e.V)
	}
	return g
}

// AddEdge connects u and v by appending each to the other's neighbor list.
// It panics on a self-loop or an out-of-range endpoint.
func (g *Graph) AddEdge(u, v int) {
	if u == v {
		panic(fmt.Sprintf("graph: self loop on vertex %d", u))
	}
	if !g.HasVertex(u) || !g.HasVertex(v) {
		panic(fmt.Sprintf("graph: edge %d-%d out of range [0, %d)", u, v, len(g.adj)))
	}
	g.adj[u] = append(g.adj[u], v)
	g.adj[v] = append(g.adj[v], u)
	g.edges = append(g.edges, Edge{U: u, V: v})
}

// Neighbors returns the vertices adjacent to v in insertion order.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// Size returns the number of vertices.
func (g *Graph) Size() int { return len(g.adj) }

// EdgeCount returns the number of edges added so far.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Degree returns the number of neighbors of v.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// HasVertex reports whether v is a vertex of g.
func (g *Graph) HasVertex(v int) bool { return v >= 0 && v < len(g.adj) }

// Edges returns every edge once, in the order it was added.
// The returned slice is owned by the graph and must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// Density returns EdgeCount divided by the number of possible edges.
// Graphs with fewer than two vertices have density 0.
func (g *Graph) Density() float64 {
	n := len(g.adj)
	if n < 2 {
		return 0
	}
	return float64(len(g.edges)) / (float64(n) * float64(n-1) / 2)
}

// =============================================================================
// JSON Serialization API
// =============================================================================

// WriteGraph writes a Graph as JSON to an io.Writer.
func WriteGraph(g *Graph, w io.Writer) error {
	return writeGraphTo(g, w)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*Graph, error) {
	return readGraphFrom(r)
}

// ReadGraphFile reads a JSON file and returns the decoded Graph.
// A missing file is reported as FILE_NOT_FOUND.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeGraphTo(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ToDocument(g)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readGraphFrom(r io.Reader) (*Graph, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode graph")
	}
	return FromDocument(doc)
}
