package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/expogrid/hallplan/pkg/cache"
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/pipeline"
)

// renderCommand creates the render command for producing artifacts from a
// serialized plan.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		configPath string
		output     string
		formatsStr string
		scale      float64
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "render [layout.json]",
		Short: "Render artifacts from a serialized floor plan",
		Long: `Render artifacts from a serialized floor plan.

The render command takes a layout.json file (produced by 'generate') and
renders it to SVG, DOT or JSON without re-running the planner. The layout
contains all positioning information, so this step is purely about
rendering. Results are cached locally keyed by the layout content.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats := parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], formats, scale, output, configPath, noCache)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "planner config file (TOML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().Float64Var(&scale, "scale", 0, "SVG pixels per metre")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runRender loads the layout and renders the requested formats.
func (c *CLI) runRender(ctx context.Context, input string, formats []string, scale float64, output, configPath string, noCache bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	l, err := layout.FromJSON(data)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Formats: formats, Scale: scale, Logger: c.Logger}

	spinner := newSpinnerWithContext(ctx, "Rendering layout...")
	spinner.Start()

	artifacts, cached, err := runner.RenderWithCacheInfo(ctx, l, cache.Hash(data), opts)
	if err != nil {
		spinner.StopWithError("Rendering failed")
		return err
	}
	spinner.Stop()

	if cached {
		printDetail("all artifacts served from cache")
	}
	return writeArtifacts(artifacts, formats, output, input)
}
