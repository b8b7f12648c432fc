package edgelist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
)

const maxLineBytes = 1 << 20

// Read decodes an edge list from r into a Graph with n vertices.
// When n <= 0 the vertex count is the largest id plus one.
// Read does not close r.
func Read(r io.Reader, n int) (*graph.Graph, error) {
	edges, size, err := ReadEdges(r, n)
	if err != nil {
		return nil, err
	}
	return graph.FromEdges(size, edges), nil
}

// ReadEdges decodes an edge list from r without building a Graph.
// It returns the edges in file order and the vertex count: n when n > 0,
// otherwise the largest id plus one.
func ReadEdges(r io.Reader, n int) ([]graph.Edge, int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var edges []graph.Edge
	maxID := -1
	line := 0
	for sc.Scan() {
		line++
		e, err := parseLine(sc.Text())
		if err != nil {
			return nil, 0, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d", line)
		}
		if n > 0 && (e.U >= n || e.V >= n) {
			return nil, 0, errs.New(errs.ErrCodeOutOfRange, "line %d: edge %d-%d out of range [0, %d)", line, e.U, e.V, n)
		}
		maxID = max(maxID, e.U, e.V)
		edges = append(edges, e)
	}
	if err := sc.Err(); err != nil {
		return nil, 0, errs.Wrap(errs.ErrCodeInvalidFormat, err, "line %d", line+1)
	}

	if n <= 0 {
		n = maxID + 1
	}
	return edges, n, nil
}

// Import reads an edge-list file. See [Read] for the meaning of n.
func Import(path string, n int) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f, n)
}

func parseLine(s string) (graph.Edge, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return graph.Edge{}, fmt.Errorf("want 2 vertex ids, got %d fields in %q", len(fields), s)
	}
	u, err := parseID(fields[0])
	if err != nil {
		return graph.Edge{}, err
	}
	v, err := parseID(fields[1])
	if err != nil {
		return graph.Edge{}, err
	}
	if u == v {
		return graph.Edge{}, fmt.Errorf("self loop on vertex %d", u)
	}
	return graph.Edge{U: u, V: v}, nil
}

func parseID(tok string) (int, error) {
	if tok[0] == '+' || tok[0] == '-' {
		return 0, fmt.Errorf("vertex id %q must be a plain non-negative integer", tok)
	}
	id, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("vertex id %q: %w", tok, err)
	}
	return id, nil
}
