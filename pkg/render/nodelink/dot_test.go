package nodelink

import (
	"context"
	"strings"
	"testing"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
)

func square() *graph.Graph {
	return graph.FromEdges(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}, {U: 3, V: 0}})
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		contains []string
		excludes []string
	}{
		{
			name:     "Plain",
			opts:     Options{},
			contains: []string{"graph G {", "  0 [label=\"0\"];", "  0 -- 1;", "  3 -- 0;"},
			excludes: []string{"->", accent, "d="},
		},
		{
			name: "HighlightPath",
			opts: Options{Path: []graph.Vertex{1, 0, 3}},
			contains: []string{
				"  0 -- 1 [color=\"" + accent + "\", penwidth=3];",
				"  3 -- 0 [color=\"" + accent + "\", penwidth=3];",
				"  1 -- 2;",
				"  3 [label=\"3\", fillcolor=\"" + accent + "\", fontcolor=white];",
			},
			excludes: []string{"  2 [label=\"2\", fillcolor"},
		},
		{
			name:     "ShowDegree",
			opts:     Options{ShowDegree: true},
			contains: []string{`label="0\nd=2"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(square(), tt.opts)
			for _, s := range tt.contains {
				if !strings.Contains(dot, s) {
					t.Errorf("DOT missing %q:\n%s", s, dot)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(dot, s) {
					t.Errorf("DOT should not contain %q:\n%s", s, dot)
				}
			}
		})
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	dot := ToDOT(square(), Options{})
	out, err := Render(context.Background(), dot, FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != dot {
		t.Error("FormatDOT should return the source unchanged")
	}
}

func TestRenderUnsupportedFormat(t *testing.T) {
	_, err := Render(context.Background(), "graph G {}", "pdf")
	if !errs.Is(err, errs.ErrCodeUnsupported) {
		t.Errorf("error = %v, want UNSUPPORTED", err)
	}
}

func TestRenderGraphTooLarge(t *testing.T) {
	_, err := RenderGraph(context.Background(), graph.New(MaxRenderVertices+1), Options{}, FormatDOT)
	if !errs.Is(err, errs.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("runs graphviz")
	}
	svg, err := RenderSVG(context.Background(), ToDOT(square(), Options{Path: []graph.Vertex{0, 1}}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.100s", svg)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50"><g/></svg>`
	if out != want {
		t.Errorf("normalizeViewBox() = %s, want %s", out, want)
	}

	noBox := []byte(`<svg><g/></svg>`)
	if string(normalizeViewBox(noBox)) != string(noBox) {
		t.Error("svg without viewBox should pass through")
	}
}
