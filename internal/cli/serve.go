package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/randgraph/pkg/server"
)

// serveScope keeps API-generated graphs apart from CLI runs in a shared cache.
const serveScope = "serve:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve graph generation and shortest-path queries over HTTP.

  POST   /graphs              {"vertices":N,"density":D,"seed":S}
  GET    /graphs/{id}         graph stats
  GET    /graphs/{id}/edges   edge list
  GET    /graphs/{id}/path    ?from=A&to=B
  GET    /graphs/{id}/render  ?format=svg&from=A&to=B
  DELETE /graphs/{id}

Graphs are kept in memory until deleted or the server stops.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			runner := c.newRunner(cmd.Context(), false, serveScope)
			defer runner.Close()
			return server.New(runner, c.Logger).
				SetMaxVertices(c.Config.Server.MaxVertices).
				ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	return cmd
}
