// Package graph provides the undirected adjacency-list graph used by the
// generator and by path search, plus its JSON node-link serialization.
//
// # Core Types
//
//   - [Graph]: vertex count plus an ordered neighbor list per vertex
//   - [Edge]: unordered vertex pair, never a self-loop
//   - [Document]: node-link wire format for JSON export
//
// Vertices are plain ints in [0, Size()). A vertex has no identity beyond its
// index.
//
// # Building
//
//	g := graph.New(5)
//	g.AddEdge(0, 1)
//	g.AddEdge(1, 2)
//
//	// or fold a finished edge list
//	g := graph.FromEdges(5, edges)
//
// AddEdge appends to both endpoints' lists in call order and never removes
// duplicates; duplicate detection belongs to whoever produces the edge list.
// Neighbor order is therefore insertion order, which makes BFS tie-breaking
// reproducible.
//
// # Serialization
//
// Graphs use the node-link JSON format:
//
//	{
//	  "nodes": [{"id": 0, "degree": 1}, {"id": 1, "degree": 1}],
//	  "edges": [{"from": 0, "to": 1}]
//	}
//
// Common operations:
//
//	graph.WriteGraph(g, os.Stdout)         // Graph → io.Writer
//	g, _ := graph.ReadGraph(r)             // io.Reader → Graph
//	g, _ := graph.ReadGraphFile("g.json")  // File → Graph
//
// # Concurrency
//
// A Graph is safe for concurrent reads once construction is finished, but
// not for concurrent AddEdge calls.
package graph
