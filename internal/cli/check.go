package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/patchworklabs/patchwork/pkg/graph"
	"github.com/patchworklabs/patchwork/pkg/quilt"
)

// checkCommand creates the check command for legality diagnostics.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [graph.json]",
		Short: "Report whether a graph is a legal quilt",
		Long: `Report whether a graph is a legal quilt.

A legal quilt has at least two vertices, every vertex with degree >= 2,
a single connected component, no bridges, and no crossing seams. The
command exits non-zero when the graph is illegal, so it can gate scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}

			printKeyValue("vertices", fmt.Sprintf("%d", g.VertexCount()))
			printKeyValue("edges", fmt.Sprintf("%d", g.EdgeCount()))
			printKeyValue("faces", fmt.Sprintf("%d", len(g.Faces())))

			if !quilt.Legal(g) {
				printError("Graph is not a legal quilt")
				printNextStep("Repair", "patchwork correct "+args[0])
				return fmt.Errorf("illegal quilt: %s", args[0])
			}

			printSuccess("Graph is a legal quilt")
			return nil
		},
	}
}
