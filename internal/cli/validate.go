package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/expogrid/hallplan/pkg/corridor"
	"github.com/expogrid/hallplan/pkg/hall"
	"github.com/expogrid/hallplan/pkg/layout"
	"github.com/expogrid/hallplan/pkg/validate"
)

// validateCommand creates the validate command for re-checking a plan.
func (c *CLI) validateCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "validate [layout.json]",
		Short: "Re-check a serialized floor plan against the hall rules",
		Long: `Re-check a serialized floor plan against the hall rules.

The validate command takes a layout.json file (produced by 'generate') and
runs the full rule set again: grid alignment, booth shapes, zone
containment, overlaps, frontage, inventory bounds, corridor connectivity
and gap coverage. The command exits non-zero when any rule is violated.

The booth inventory to check against comes from the config file when one
is given, otherwise the fixed default inventory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(args[0], configPath)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "planner config file (TOML)")

	return cmd
}

// runValidate loads the layout and runs every rule check on it.
func (c *CLI) runValidate(input, configPath string) error {
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
	inventory := hall.DefaultInventory()
	if cfg != nil {
		specs, err := cfg.ResolveInventory()
		if err != nil {
			return err
		}
		if specs != nil {
			inventory = specs
		}
	}

	g := hall.Default()
	net := corridor.NewNetwork(l.Hall, l.Corridors)

	p := newProgress(c.Logger)
	report := validate.Check(g, net, l.Booths, inventory)
	p.done(fmt.Sprintf("Checked %d booths against %d corridor segments", len(l.Booths), len(l.Corridors)))

	printReport(report)
	if !report.Passed() {
		return fmt.Errorf("validation failed with %d violations", len(report.Violations))
	}
	printSuccess("Layout passes all checks")
	return nil
}
