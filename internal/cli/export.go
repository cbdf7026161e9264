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

// exportCommand creates the export command for rendering diagram images.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		formats string
		typ     string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "export [spec.json]",
		Short: "Render a diagram spec as DOT, SVG, PNG, or PDF",
		Long: `Render a diagram spec as DOT, SVG, PNG, or PDF.

The export command runs the full enhance and render pipeline: the spec is
normalized, positions are computed, and one file per requested format is
written next to the input.

Concept maps render through Graphviz with nodes pinned to the computed
positions; mind maps render directly to SVG. PNG and PDF output requires
librsvg (rsvg-convert) on the PATH.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Formats = parseFormats(formats)
			return c.runExport(cmd.Context(), args[0], typ, opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input without extension)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "svg", "comma-separated formats: json, dot, svg, png, pdf")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&typ, "type", "t", "", "diagram type: concept_map, mind_map (default: detect from spec)")

	// Layout flags
	cmd.Flags().StringVar(&opts.Strategy, "strategy", "", "concept-map strategy: layered, sector, radial")
	cmd.Flags().StringVar(&opts.Complexity, "complexity", "", "mind-map complexity: simple, medium (default), complex, extreme")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 0, "jitter seed for the radial strategy")

	// Render flags
	cmd.Flags().BoolVar(&opts.Labeled, "labeled", true, "include relationship labels on edges")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// runExport loads the spec, runs the pipeline, and writes one file per format.
func (c *CLI) runExport(ctx context.Context, input, typ string, opts pipeline.Options, output string, noCache bool) error {
	if err := loadSpec(input, typ, &opts); err != nil {
		return err
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	p := newProgress(c.Logger)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", strings.Join(opts.Formats, ", ")))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()
	p.done(fmt.Sprintf("Rendered %d formats", len(opts.Formats)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := output
	if base == "" {
		base = strings.TrimSuffix(input, filepath.Ext(input))
	}

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(result.Stats.NodeCount, warningsOf(result), result.CacheInfo.RenderHit)

	return nil
}
