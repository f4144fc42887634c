package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/pipeline"
)

// segmentCommand creates the segment command for extracting graphs from images.
func (c *CLI) segmentCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{
		Tolerance:   pipeline.DefaultTolerance,
		MinBlobSize: pipeline.DefaultMinBlobSize,
	}

	cmd := &cobra.Command{
		Use:   "segment [image]",
		Short: "Extract a planar graph from a raster image",
		Long: `Extract a planar graph from a raster image.

The segment command flood-fills the image into color blobs, drops blobs
smaller than --min-blob-size, and emits a vertex at every point where
three or more blobs (or the image border) meet. The output is a graph.json
file describing the raw, possibly illegal, seam graph.

Results are cached locally for faster subsequent runs.

Use 'correct' to repair the extracted graph into a legal quilt.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.ImagePath = args[0]
			return c.runSegment(cmd.Context(), opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even if cached")
	cmd.Flags().Float64Var(&opts.Tolerance, "tolerance", opts.Tolerance, "color tolerance for blob merging (squared RGB distance)")
	cmd.Flags().IntVar(&opts.MinBlobSize, "min-blob-size", opts.MinBlobSize, "drop blobs below this pixel count")

	return cmd
}

// runSegment extracts the graph and writes it as JSON.
func (c *CLI) runSegment(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Segmenting image...")
	spinner.Start()

	g, _, cacheHit, err := runner.SegmentWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Segmentation failed")
		return interruptible(ctx, fmt.Errorf("segment %s: %w", opts.ImagePath, err))
	}
	spinner.Stop()

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(opts.ImagePath, filepath.Ext(opts.ImagePath)) + ".json"
	}

	if err := graph.WriteGraphFile(g, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Segmentation complete")
	printFile(outputPath)
	printStats(g.VertexCount(), g.EdgeCount(), 0, cacheHit)
	printNewline()
	printNextStep("Correct", "patchwork correct "+outputPath)

	return nil
}
