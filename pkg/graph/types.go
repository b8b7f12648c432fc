package graph

import (
	"cmp"
	"fmt"

	errs "github.com/matzehuels/randgraph/pkg/errors"
)

// Vertex identifies a vertex by its index in [0, Size()).
type Vertex = int

// Edge is an unordered pair of distinct vertices.
// The order of U and V carries no meaning beyond emission order.
type Edge struct {
	U int
	V int
}

// Normalized returns the edge with the smaller endpoint first.
func (e Edge) Normalized() Edge {
	if e.U > e.V {
		return Edge{U: e.V, V: e.U}
	}
	return e
}

// Compare orders edges lexicographically by (U, V) for use with
// slices.SortFunc.
func (e Edge) Compare(o Edge) int {
	if e.U != o.U {
		return cmp.Compare(e.U, o.U)
	}
	return cmp.Compare(e.V, o.V)
}

// String formats the edge in edge-list notation.
func (e Edge) String() string {
	return fmt.Sprintf("%d %d", e.U, e.V)
}

// =============================================================================
// Node-link serialization
// =============================================================================

// Document is the node-link serialization of a Graph.
type Document struct {
	Nodes []Node `json:"nodes"`
	Edges []Link `json:"edges"`
}

// Node is a serialized vertex.
type Node struct {
	ID     int `json:"id"`
	Degree int `json:"degree,omitempty"`
}

// Link is a serialized undirected edge.
type Link struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// ToDocument converts g to its node-link form.
// Edges keep insertion order so a round trip rebuilds identical adjacency lists.
func ToDocument(g *Graph) Document {
	doc := Document{
		Nodes: make([]Node, g.Size()),
		Edges: make([]Link, 0, g.EdgeCount()),
	}
	for v := range g.Size() {
		doc.Nodes[v] = Node{ID: v, Degree: g.Degree(v)}
	}
	for _, e := range g.Edges() {
		doc.Edges = append(doc.Edges, Link{From: e.U, To: e.V})
	}
	return doc
}

// FromDocument rebuilds a Graph from its node-link form.
// Node ids must be exactly 0..len(Nodes)-1 and edges must reference them;
// violations are reported as INVALID_FORMAT.
func FromDocument(doc Document) (*Graph, error) {
	n := len(doc.Nodes)
	for i, node := range doc.Nodes {
		if node.ID != i {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "node %d: id %d is not its index", i, node.ID)
		}
	}

	g := New(n)
	for i, l := range doc.Edges {
		if l.From < 0 || l.From >= n || l.To < 0 || l.To >= n {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %d (%d-%d): endpoint out of range [0, %d)", i, l.From, l.To, n)
		}
		if l.From == l.To {
			return nil, errs.New(errs.ErrCodeInvalidFormat, "edge %d: self loop on %d", i, l.From)
		}
		g.AddEdge(l.From, l.To)
	}
	return g, nil
}
