package edgelist

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/matzehuels/randgraph/pkg/gen"
	"github.com/matzehuels/randgraph/pkg/graph"
)

// Write encodes edges one per line in the order given.
func Write(w io.Writer, edges []graph.Edge) error {
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 32)
	for _, e := range edges {
		buf = strconv.AppendInt(buf[:0], int64(e.U), 10)
		buf = append(buf, ' ')
		buf = strconv.AppendInt(buf, int64(e.V), 10)
		buf = append(buf, '\n')
		if _, err := bw.Write(buf); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteGraph encodes every edge of g in insertion order.
func WriteGraph(w io.Writer, g *graph.Graph) error {
	return Write(w, g.Edges())
}

// Export writes edges to a file at path, replacing any existing file.
func Export(path string, edges []graph.Edge) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, edges); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// FixturePath returns the path of the fixture for size inside dir.
func FixturePath(dir string, size int) string {
	return filepath.Join(dir, "graph_"+strconv.Itoa(size))
}

// WriteFixtures generates one graph per size at the given density and
// writes each to FixturePath(dir, size). It returns the written paths.
func WriteFixtures(ctx context.Context, dir string, sizes []int, density float64, g *gen.Generator) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	paths := make([]string, 0, len(sizes))
	for _, size := range sizes {
		if err := ctx.Err(); err != nil {
			return paths, err
		}
		edges, err := g.Edges(ctx, size, density)
		if err != nil {
			return paths, fmt.Errorf("generate %d: %w", size, err)
		}
		path := FixturePath(dir, size)
		if err := Export(path, edges); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ImportFixture reads the fixture for size from dir.
func ImportFixture(dir string, size int) (*graph.Graph, error) {
	return Import(FixturePath(dir, size), size)
}
