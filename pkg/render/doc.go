// Package render holds the visual outputs of randgraph.
//
// The [nodelink] subpackage draws a generated graph as an undirected
// node-link diagram with Graphviz and can highlight a shortest path.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Path: p})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [nodelink]: github.com/matzehuels/randgraph/pkg/render/nodelink
package render
