package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/expogrid/hallplan/pkg/config"
	"github.com/expogrid/hallplan/pkg/pipeline"
	"github.com/expogrid/hallplan/pkg/store"
)

// generateCommand creates the generate command for planning a floor plan.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		configPath      string
		output          string
		formatsStr      string
		corridorWidth   float64
		maxSpan         float64
		starvationWidth float64
		scale           float64
		noCache         bool
		refresh         bool
		save            bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a floor plan for the exhibition hall",
		Long: `Generate a floor plan for the exhibition hall.

The generate command runs the full planning pipeline: it lays out the
corridor network, decomposes the remaining space into placeable regions,
places the booth inventory largest-first with exposure scoring, and
validates the finished plan against the hall rules.

Corridor heuristics, scoring weights and the booth inventory can be tuned
via a TOML config file (--config); flags override config values. Results
are cached locally for faster subsequent runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			opts := pipeline.Options{}
			if cfg != nil {
				if opts, err = cfg.PipelineOptions(); err != nil {
					return err
				}
			}

			f := cmd.Flags()
			if f.Changed("corridor-width") {
				opts.SecondaryWidth = corridorWidth
			}
			if f.Changed("max-span") {
				opts.MaxSpanDepth = maxSpan
			}
			if f.Changed("starvation-width") {
				opts.StarvationWidth = starvationWidth
			}
			if f.Changed("scale") {
				opts.Scale = scale
			}
			if formatsStr != "" || len(opts.Formats) == 0 {
				opts.Formats = parseFormats(formatsStr)
			}
			opts.Refresh = refresh

			return c.runGenerate(cmd.Context(), cfg, opts, output, noCache, save)
		},
	}

	// Common flags
	cmd.Flags().StringVar(&configPath, "config", "", "planner config file (TOML)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), dot, json (comma-separated)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if a cached plan exists")

	// Planner flags
	cmd.Flags().Float64Var(&corridorWidth, "corridor-width", 0, "secondary corridor width in metres")
	cmd.Flags().Float64Var(&maxSpan, "max-span", 0, "maximum region span before a corridor is cut")
	cmd.Flags().Float64Var(&starvationWidth, "starvation-width", 0, "region width below which frontage cuts are skipped")
	cmd.Flags().Float64Var(&scale, "scale", 0, "SVG pixels per metre")

	// Persistence flags
	cmd.Flags().BoolVar(&save, "save", false, "persist the plan to the configured store")

	return cmd
}

// runGenerate executes the pipeline and writes the requested artifacts.
func (c *CLI) runGenerate(ctx context.Context, cfg *config.Config, opts pipeline.Options, output string, noCache, save bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Planning floor plan...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Planning failed")
		return err
	}
	spinner.Stop()

	l := result.Layout
	printSuccess("Placed %d booths covering %.0f m²", l.Stats.PlacedCount, l.Stats.PlacedArea)
	printStats(l.Stats.PlacedCount, violationCount(l), result.CacheInfo.PlanHit)
	printKeyValue("utilization", fmt.Sprintf("%.1f%%", l.Stats.Utilization*100))
	printKeyValue("corridors", fmt.Sprintf("%.0f m²", l.Stats.CorridorArea))
	if l.Stats.UnusedCount > 0 {
		printWarning("%d booths from the inventory could not be placed", l.Stats.UnusedCount)
	}
	printReport(l.Report)

	if err := writeArtifacts(result.Artifacts, opts.Formats, output, ""); err != nil {
		return err
	}

	if save {
		if err := c.savePlan(ctx, cfg, result); err != nil {
			return err
		}
	} else if hasFormat(opts.Formats, pipeline.FormatJSON) {
		printNextStep("Re-check the plan", "hallplan validate "+basePath(output, "")+".json")
	}
	return nil
}

func hasFormat(formats []string, format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// savePlan persists the finished plan to the configured MongoDB store.
func (c *CLI) savePlan(ctx context.Context, cfg *config.Config, result *pipeline.Result) error {
	if cfg == nil || cfg.Store.URI == "" {
		return fmt.Errorf("--save requires store.uri in the config file")
	}

	st, err := store.New(ctx, cfg.Store.URI, cfg.Store.Database)
	if err != nil {
		return fmt.Errorf("connect store: %w", err)
	}
	defer st.Close(ctx)

	id, err := st.Save(ctx, result.Layout, result.PlanHash)
	if err != nil {
		return err
	}
	printSuccess("Saved plan %s", id)
	return nil
}
