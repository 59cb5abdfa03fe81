package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expogrid/hallplan/internal/server"
	"github.com/expogrid/hallplan/pkg/config"
	"github.com/expogrid/hallplan/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planning pipeline over HTTP",
		Long: `Serve the planning pipeline over HTTP.

Endpoints:
  GET  /healthz            liveness probe
  POST /api/plan           run the pipeline, body carries pipeline options (JSON)
  GET  /api/plan.svg       run the pipeline and return the rendered SVG
  GET  /api/corridors.svg  Graphviz view of the corridor adjacency graph

With store.uri configured, stored plans are exposed under /api/plans.

The server shares the plan cache with the CLI, so repeated requests with
identical options are served from cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "planner config file (TOML)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the runner and optional store into the HTTP server and
// blocks until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, configPath, addr string, noCache bool) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(ctx)
	}

	printInfo("Listening on %s", addr)
	return server.New(runner, st, c.Logger).ListenAndServe(ctx, addr)
}

// openStore connects to MongoDB when the config enables persistence.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg == nil || cfg.Store.URI == "" {
		return nil, nil
	}
	st, err := store.New(ctx, cfg.Store.URI, cfg.Store.Database)
	if err != nil {
		return nil, fmt.Errorf("connect store: %w", err)
	}
	return st, nil
}
