package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/randgraph/pkg/edgelist"
	"github.com/matzehuels/randgraph/pkg/gen"
)

// fixturesCommand creates the fixtures command.
func (c *CLI) fixturesCommand() *cobra.Command {
	var (
		sizes    []int
		density  float64
		seed     uint64
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "fixtures DIR",
		Short: "Write graph_<size> edge lists for benchmarks",
		Long: `Generate one graph per size and write it to DIR/graph_<size> in edge-list
format. "randgraph bench --fixtures DIR" then searches these graphs, so BFS
timings are comparable across runs.`,
		Example: `  randgraph fixtures ./fixtures --sizes 100,1000,10000 --seed 1`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("sizes") {
				sizes = c.Config.Bench.Sizes
			}
			if !flags.Changed("density") {
				density = c.Config.Bench.Density
			}
			if !flags.Changed("strategy") {
				strategy = c.Config.Generate.Strategy
			}
			s, err := gen.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			logger := loggerFromContext(cmd.Context())
			genOpts := []gen.Option{gen.WithStrategy(s), gen.WithLogger(logger)}
			if seed != 0 {
				genOpts = append(genOpts, gen.WithSeed(seed))
			}

			out := cmd.OutOrStdout()
			sp := newSpinner(cmd.Context(), cmd.ErrOrStderr(), fmt.Sprintf("Writing %d fixtures", len(sizes)))
			sp.Start()
			sw := newStopwatch(logger)
			paths, err := edgelist.WriteFixtures(cmd.Context(), args[0], sizes, density, gen.New(genOpts...))
			if err != nil {
				sp.StopWithError("Writing fixtures failed")
				return err
			}
			sp.Stop()
			sw.done(fmt.Sprintf("Wrote %d fixtures", len(paths)))

			printSuccess(out, "Wrote %d fixtures", len(paths))
			for _, p := range paths {
				printFile(out, p)
			}
			printNextStep(out, "Benchmark against them", fmt.Sprintf("%s bench --fixtures %s", appName, args[0]))
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&sizes, "sizes", c.Config.Bench.Sizes, "comma-separated vertex counts")
	cmd.Flags().Float64VarP(&density, "density", "d", c.Config.Bench.Density, "edge density in (0, 1]")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = random)")
	cmd.Flags().StringVar(&strategy, "strategy", c.Config.Generate.Strategy, "completion strategy: auto, rejection, complement")
	return cmd
}
