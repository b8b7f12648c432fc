package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/randgraph/pkg/bench"
	errs "github.com/matzehuels/randgraph/pkg/errors"
	"github.com/matzehuels/randgraph/pkg/gen"
)

// benchOpts holds the command-line flags for the bench command.
type benchOpts struct {
	sizes       []int
	runs        int
	density     float64
	parallelism int
	seed        uint64
	strategy    string
	fixtures    string
	output      string
	tui         bool
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var opts benchOpts

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time graph generation and BFS across sizes",
		Long: `For every size, generate a graph at the given density and answer one
shortest-path query from vertex 0 to a random vertex, repeated --runs times.
Average, minimum and maximum wall-clock times are reported per size.

With --fixtures, queries run on the graph_<size> edge lists in that directory
(see "randgraph fixtures") instead of the freshly generated graphs.`,
		Example: `  randgraph bench --sizes 100,1000,10000 --runs 10
  randgraph bench --fixtures ./fixtures --parallel 4 -o report.json --tui`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyBenchConfig(cmd, &opts)
			return c.runBench(cmd, opts)
		},
	}

	def := c.Config.Bench
	cmd.Flags().IntSliceVar(&opts.sizes, "sizes", def.Sizes, "comma-separated vertex counts")
	cmd.Flags().IntVar(&opts.runs, "runs", def.Runs, "runs per size")
	cmd.Flags().Float64VarP(&opts.density, "density", "d", def.Density, "edge density in (0, 1]")
	cmd.Flags().IntVarP(&opts.parallelism, "parallel", "p", def.Parallelism, "concurrent runs")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "base seed (0 = random)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", c.Config.Generate.Strategy, "completion strategy: auto, rejection, complement")
	cmd.Flags().StringVar(&opts.fixtures, "fixtures", "", "directory of graph_<size> edge lists to search")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the JSON report to this file")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show a live progress view")

	return cmd
}

// applyBenchConfig fills flags the user did not set from the config file.
func (c *CLI) applyBenchConfig(cmd *cobra.Command, opts *benchOpts) {
	cfg := c.Config.Bench
	flags := cmd.Flags()
	if !flags.Changed("sizes") {
		opts.sizes = cfg.Sizes
	}
	if !flags.Changed("runs") {
		opts.runs = cfg.Runs
	}
	if !flags.Changed("density") {
		opts.density = cfg.Density
	}
	if !flags.Changed("parallel") {
		opts.parallelism = cfg.Parallelism
	}
	if !flags.Changed("strategy") {
		opts.strategy = c.Config.Generate.Strategy
	}
}

func (c *CLI) runBench(cmd *cobra.Command, opts benchOpts) error {
	strategy, err := gen.ParseStrategy(opts.strategy)
	if err != nil {
		return err
	}
	if opts.output != "" {
		if err := errs.ValidateOutputPath(opts.output); err != nil {
			return err
		}
	}

	logger := loggerFromContext(cmd.Context())
	cfg := bench.Config{
		Sizes:       opts.sizes,
		Runs:        opts.runs,
		Density:     opts.density,
		Parallelism: opts.parallelism,
		Seed:        opts.seed,
		Strategy:    strategy,
		FixtureDir:  opts.fixtures,
		Logger:      logger,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var report *bench.Report
	if opts.tui {
		cfg.Logger = log.New(io.Discard)
		report, err = runBenchTUI(cmd.Context(), cfg, cmd.ErrOrStderr())
	} else {
		report, err = bench.Run(cmd.Context(), cfg, func(e bench.Event) {
			logger.Debug("run finished",
				"size", e.Size,
				"run", e.Run,
				"generate", e.Generate,
				"search", e.Search,
				"progress", fmt.Sprintf("%d/%d", e.Completed, e.Total))
		})
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, resultsTable(report.Results))
	printDetail(out, "id %s · seed %d · density %g · %s", report.ID, report.Seed, report.Density, report.Duration.Round(time.Millisecond))

	if opts.output != "" {
		if err := writeReport(opts.output, report); err != nil {
			return err
		}
		printFile(out, opts.output)
	}
	return nil
}

func writeReport(path string, report *bench.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := report.WriteJSON(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
