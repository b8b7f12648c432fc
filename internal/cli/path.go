package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/randgraph/pkg/edgelist"
	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/search"
)

// pathCommand creates the path command.
func (c *CLI) pathCommand() *cobra.Command {
	var (
		vertices int
		stats    bool
	)

	cmd := &cobra.Command{
		Use:   "path FILE FROM TO",
		Short: "Print a shortest path between two vertices of an edge list",
		Long: `Load an edge-list file and print a shortest path from FROM to TO as a
space-separated list of vertices, or "no path" when TO is unreachable.

FILE is an edge list, or a node-link document when it ends in .json. Without
--vertices the vertex count of an edge list is the largest id plus one.
With --stats a second line reports the eccentricity of FROM and how many
vertices it reaches.`,
		Example: `  randgraph path graph_1000 0 999`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := parseVertexArg("FROM", args[1])
			if err != nil {
				return err
			}
			to, err := parseVertexArg("TO", args[2])
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			sw := newStopwatch(logger)
			g, err := loadGraph(args[0], vertices)
			if err != nil {
				return err
			}
			logger.Debug("loaded edge list", "vertices", g.Size(), "edges", g.EdgeCount())

			s := search.NewSearcher(g).WithContext(cmd.Context())
			p, err := s.ShortestPath(from, to)
			if errors.Is(err, search.ErrNoPath) {
				fmt.Fprintln(cmd.OutOrStdout(), "no path")
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatPath(p))
			if stats {
				ecc, reached, err := search.Eccentricity(g, from)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "eccentricity %d, reaches %d of %d vertices\n", ecc, reached, g.Size())
			}
			sw.done(fmt.Sprintf("Found path of %d hops, visited %d vertices", p.Hops(), s.Visited))
			return nil
		},
	}

	cmd.Flags().IntVarP(&vertices, "vertices", "n", 0, "vertex count (0 = infer from the file)")
	cmd.Flags().BoolVar(&stats, "stats", false, "also print the eccentricity of FROM")
	return cmd
}

// loadGraph reads an edge list, or a node-link JSON document when path ends
// in .json. A non-zero n must match the vertex count of a JSON document.
func loadGraph(path string, n int) (*graph.Graph, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return edgelist.Import(path, n)
	}
	g, err := graph.ReadGraphFile(path)
	if err != nil {
		return nil, err
	}
	if n > 0 && n != g.Size() {
		return nil, errs.New(errs.ErrCodeInvalidInput, "%s has %d vertices, --vertices says %d", path, g.Size(), n)
	}
	return g, nil
}

func parseVertexArg(name, s string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be a non-negative integer, got %q", name, s)
	}
	return v, nil
}

func formatPath(p search.Path) string {
	parts := make([]string, len(p))
	for i, v := range p {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
