package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/pipeline"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// correctCommand creates the correct command for repairing graphs.
func (c *CLI) correctCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		refresh bool
	)

	cmd := &cobra.Command{
		Use:   "correct [graph.json]",
		Short: "Repair a graph into a legal quilt",
		Long: `Repair a graph into a legal quilt.

The correct command takes a graph.json file (produced by 'segment') and
runs the correction loop: degree repair, component merging, bridge repair,
and crossing resolution, repeated until a pass finds nothing to fix or the
iteration cap stops it. The corrected graph, including its face
decomposition, is written as JSON.

Results are cached locally for faster subsequent runs.

Use 'render' to turn the corrected graph into visual output.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCorrect(cmd.Context(), args[0], output, noCache, refresh)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.corrected.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even if cached")

	return cmd
}

// runCorrect loads the graph, corrects it, and writes the result.
func (c *CLI) runCorrect(ctx context.Context, input, output string, noCache, refresh bool) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := pipeline.Options{Refresh: refresh, Logger: c.Logger}

	spinner := newSpinner(ctx, "Correcting graph...")
	spinner.Start()

	corrected, stats, cacheHit, err := runner.CorrectWithCacheInfo(ctx, g, nil, opts)
	if err != nil {
		spinner.StopWithError("Correction failed")
		return interruptible(ctx, fmt.Errorf("correct: %w", err))
	}
	spinner.Stop()

	outputPath := output
	if outputPath == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		outputPath = base + ".corrected.json"
	}

	if err := graph.WriteGraphFile(corrected, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Correction complete")
	printFile(outputPath)
	printDetail("%d repair passes", stats.Passes)
	if !stats.Stable {
		printWarning("Iteration cap reached before the graph stabilized")
	}
	if !quilt.Legal(corrected) {
		printWarning("Graph is still not a legal quilt; see 'patchwork check'")
	}
	printStats(corrected.VertexCount(), corrected.EdgeCount(), len(corrected.Faces()), cacheHit)
	printNewline()
	printNextStep("Render", "patchwork render "+outputPath)

	return nil
}
