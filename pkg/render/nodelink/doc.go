// Package nodelink renders graphs as node-link diagrams.
//
// # Usage
//
// Convert a graph to DOT, then render it:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Path: path})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//	png, err := nodelink.Render(ctx, dot, nodelink.FormatPNG)
//
// # Options
//
//   - Path: vertices of a path to highlight; its vertices and edges are drawn
//     in the accent color
//   - ShowDegree: append each vertex's degree to its label
//
// # DOT Format
//
// [ToDOT] emits an undirected graph ("graph G { 0 -- 1; }") laid out with
// the neato engine, since random graphs have no natural rank order. Edges
// appear in insertion order.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process. No external binaries are needed.
package nodelink
