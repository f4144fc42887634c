package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patchworklabs/patchwork/pkg/pipeline"
)

// stitchCommand creates the stitch command for running the full pipeline.
func (c *CLI) stitchCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{
		Tolerance:   pipeline.DefaultTolerance,
		MinBlobSize: pipeline.DefaultMinBlobSize,
	}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "stitch [image]",
		Short: "Run the full pipeline from an image to rendered output",
		Long: `Run the full pipeline from an image to rendered output.

The stitch command segments the image, corrects the extracted graph into a
legal quilt, and renders the result in one step. It is equivalent to
running 'segment', 'correct', and 'render' in sequence, with each stage
cached independently.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ImagePath = args[0]
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if err := pipeline.ValidateVizType(opts.VizType); err != nil {
				return err
			}
			return c.runStitch(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute every stage even if cached")

	// Segment flags
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", opts.Tolerance, "color tolerance for blob merging (squared RGB distance)")
	cmd.Flags().IntVar(&opts.MinBlobSize, "min-blob-size", opts.MinBlobSize, "drop blobs below this pixel count")

	// Render flags
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", opts.VizType, "visualization type: patch (default), nodelink")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), png, pdf, dot, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.ShowVertices, "vertices", opts.ShowVertices, "draw vertex markers (patch)")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw vertex labels")
	cmd.Flags().Float64Var(&opts.StrokeWidth, "stroke-width", opts.StrokeWidth, "seam line width (patch)")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG scale factor")

	return cmd
}

// runStitch executes the full pipeline and writes the artifacts.
func (c *CLI) runStitch(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)

	spinner := newSpinner(ctx, "Stitching quilt...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Pipeline failed")
		return interruptible(ctx, fmt.Errorf("stitch %s: %w", opts.ImagePath, err))
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Stitched %d faces", result.Stats.FaceCount))

	if !result.Correction.Stable {
		printWarning("Iteration cap reached before the graph stabilized")
	}

	if err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     opts.ImagePath,
		output:    output,
		cacheHit:  result.CacheInfo.RenderHit,
	}); err != nil {
		return err
	}

	printStats(result.Stats.VertexCount, result.Stats.EdgeCount, result.Stats.FaceCount, result.CacheInfo.CorrectHit)
	return nil
}
