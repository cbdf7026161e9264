package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lycosa9527/mindgraph/pkg/pipeline"
)

// layoutCommand creates the layout command for computing diagram layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output      string
		typ         string
		noCache     bool
		interactive bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout [spec.json]",
		Short: "Compute a render-ready layout from a diagram spec",
		Long: `Compute a render-ready layout from a diagram spec.

The layout command takes a raw spec file (typically produced by a language
model), normalizes it, computes node positions, and writes an enhanced spec
with positions, connections, and recommended canvas dimensions. The output
is a layout.json file that can be rendered using the 'export' command.

Concept maps support three placement strategies (layered, sector, radial);
mind maps support complexity tiers (simple, medium, complex, extreme).

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], typ, opts, output, noCache, interactive)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type: concept_map, mind_map (default: detect from spec)")

	// Layout flags
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "concept-map strategy: layered, sector, radial (default: detect from spec)")
	cmd.Flags().StringVar(&opts.Complexity, "complexity", "", "mind-map complexity: simple, medium (default), complex, extreme")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "jitter seed for the radial strategy")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when a cached layout exists")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick the strategy or complexity interactively")

	return cmd
}

// runLayout loads the spec, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, typ string, opts pipeline.Options, output string, noCache, interactive bool) error {
	if err := loadSpec(input, typ, &opts); err != nil {
		return err
	}

	if interactive {
		if err := pickInteractive(&opts); err != nil {
			return err
		}
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatJSON}

	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".layout.json"
	}

	if err := os.WriteFile(outputPath, result.Artifacts[pipeline.FormatJSON], 0644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(result.Stats.NodeCount, warningsOf(result), result.CacheInfo.LayoutHit)
	printNewline()
	printNextStep("Render", "mindgraph export "+input)

	return nil
}
