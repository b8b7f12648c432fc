package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
)

// Output formats accepted by Render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
)

// MaxRenderVertices is the largest graph Render accepts. Graphviz layout
// time grows quickly and larger diagrams are unreadable anyway.
const MaxRenderVertices = 2000

const accent = "#e4572e"

// Options configures node-link diagram rendering.
type Options struct {
	// Path lists the vertices of a path to highlight, in order.
	Path []graph.Vertex
	// ShowDegree adds the vertex degree to each label.
	ShowDegree bool
}

// ToDOT converts g to Graphviz DOT source.
func ToDOT(g *graph.Graph, opts Options) string {
	onPath := make(map[int]bool, len(opts.Path))
	pathEdges := make(map[graph.Edge]bool, len(opts.Path))
	for i, v := range opts.Path {
		onPath[v] = true
		if i > 0 {
			pathEdges[graph.Edge{U: opts.Path[i-1], V: v}.Normalized()] = true
		}
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=12, width=0.3];\n")
	buf.WriteString("  edge [color=\"#888888\"];\n")
	buf.WriteString("\n")

	for v := range g.Size() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(g, v, opts.ShowDegree))}
		if onPath[v] {
			attrs = append(attrs, "fillcolor=\""+accent+"\"", "fontcolor=white")
		}
		fmt.Fprintf(&buf, "  %d [%s];\n", v, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges() {
		if pathEdges[e.Normalized()] {
			fmt.Fprintf(&buf, "  %d -- %d [color=\"%s\", penwidth=3];\n", e.U, e.V, accent)
			continue
		}
		fmt.Fprintf(&buf, "  %d -- %d;\n", e.U, e.V)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(g *graph.Graph, v int, showDegree bool) string {
	if !showDegree {
		return strconv.Itoa(v)
	}
	return fmt.Sprintf("%d\nd=%d", v, g.Degree(v))
}

// Render produces the diagram in the given format. FormatDOT returns the
// source unchanged.
func Render(ctx context.Context, dot string, format string) ([]byte, error) {
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return renderWith(ctx, dot, graphviz.PNG)
	default:
		return nil, errs.New(errs.ErrCodeUnsupported, "unsupported render format %q", format)
	}
}

// RenderGraph checks the size limit, converts g to DOT and renders it.
func RenderGraph(ctx context.Context, g *graph.Graph, opts Options, format string) ([]byte, error) {
	if g.Size() > MaxRenderVertices {
		return nil, errs.New(errs.ErrCodeInvalidInput, "graph has %d vertices, rendering supports at most %d", g.Size(), MaxRenderVertices)
	}
	return Render(ctx, ToDOT(g, opts), format)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	svg, err := renderWith(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(svg), nil
}

func renderWith(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.-]+)\s+([0-9.-]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with one whose
// viewBox starts at the origin, so the diagram scales with its container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(header))
}
