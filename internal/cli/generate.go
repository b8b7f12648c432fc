package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/randgraph/pkg/edgelist"
	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/graph"
	"github.com/matzehuels/randgraph/pkg/pipeline"
)

const (
	formatEdgeList = "edgelist"
	formatJSON     = "json"

	// spinnerThreshold is the vertex count above which generate shows a
	// spinner while writing to a file.
	spinnerThreshold = 50000
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	vertices    int
	density     float64
	seed        uint64
	strategy    string
	maxAttempts int
	output      string
	format      string
	noCache     bool
	refresh     bool
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	opts := generateOpts{
		density:  pipeline.DefaultDensity,
		strategy: pipeline.DefaultStrategy,
		format:   formatEdgeList,
	}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random connected graph",
		Long: `Generate a random connected undirected graph with the given number of
vertices. A random spanning tree is decoded from a Prüfer sequence, then
random edges are added until the graph reaches the requested density.

Seeded runs are cached, so repeating a command returns the same graph
without regenerating it.`,
		Example: `  randgraph generate -n 1000 -d 0.02 --seed 42 -o graph.txt
  randgraph generate -n 50 -d 0.5 --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyGenerateConfig(cmd, &opts)
			return c.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.vertices, "vertices", "n", 0, "number of vertices (required)")
	cmd.Flags().Float64VarP(&opts.density, "density", "d", opts.density, "edge density in (0, 1]")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (0 = random, uncached)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", opts.strategy, "completion strategy: auto, rejection, complement")
	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 0, "cap on rejection-sampling draws (0 = default)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: edgelist, json")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the edge-list cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "regenerate even when cached")
	cmd.MarkFlagRequired("vertices")

	return cmd
}

// applyGenerateConfig fills flags the user did not set from the config file.
func (c *CLI) applyGenerateConfig(cmd *cobra.Command, opts *generateOpts) {
	cfg := c.Config.Generate
	flags := cmd.Flags()
	if !flags.Changed("density") {
		opts.density = cfg.Density
	}
	if !flags.Changed("seed") {
		opts.seed = cfg.Seed
	}
	if !flags.Changed("strategy") && cfg.Strategy != "" {
		opts.strategy = cfg.Strategy
	}
	if !flags.Changed("max-attempts") {
		opts.maxAttempts = cfg.MaxAttempts
	}
}

func (c *CLI) runGenerate(cmd *cobra.Command, opts generateOpts) error {
	if opts.format != formatEdgeList && opts.format != formatJSON {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format %q (must be edgelist or json)", opts.format)
	}
	if opts.output != "" {
		if err := errs.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	runner := c.newRunner(ctx, opts.noCache, "")
	defer runner.Close()

	var sp *Spinner
	if opts.output != "" && opts.vertices >= spinnerThreshold {
		sp = newSpinner(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Generating %d vertices", opts.vertices))
		sp.Start()
	}

	res, err := runner.Generate(ctx, pipeline.Options{
		Vertices:    opts.vertices,
		Density:     opts.density,
		Seed:        opts.seed,
		Strategy:    opts.strategy,
		MaxAttempts: opts.maxAttempts,
		Refresh:     opts.refresh,
	})
	if err != nil {
		if sp != nil {
			sp.StopWithError("Generation failed")
		}
		return err
	}
	if sp != nil {
		sp.Stop()
	}

	if opts.output == "" {
		return writeGraph(cmd.OutOrStdout(), res.Graph, opts.format)
	}

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.output, err)
	}
	if err := writeGraph(f, res.Graph, opts.format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.output, err)
	}

	out := cmd.OutOrStdout()
	printSuccess(out, "Generated graph")
	printStats(out, res.Graph.Size(), res.Graph.EdgeCount(), res.Seed, res.CacheHit)
	printFile(out, opts.output)
	if opts.format == formatEdgeList {
		printNextStep(out, "Query it", fmt.Sprintf("%s path %s 0 %d", appName, opts.output, res.Graph.Size()-1))
	}
	return nil
}

func writeGraph(w io.Writer, g *graph.Graph, format string) error {
	if format == formatJSON {
		return graph.WriteGraph(g, w)
	}
	return edgelist.WriteGraph(w, g)
}
