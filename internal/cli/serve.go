package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/lootgrid/internal/server"
)

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve container openings over HTTP",
		Long: `Serve container openings over HTTP.

Endpoints:
  GET /healthz
  GET /containers
  GET /containers/{key}/open?user=<name>&seed=<n>`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "do not use the image cache")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	e, err := c.newEnv(ctx, cfg, noCache)
	if err != nil {
		return err
	}
	defer e.Close()

	printInfo("Serving %d containers on %s", e.catalog.ContainerCount(), StyleHighlight.Render(cfg.Server.Addr))
	return server.New(cfg.Server.Addr, e.renderer, loggerFromContext(ctx)).ListenAndServe(ctx)
}
