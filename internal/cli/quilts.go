package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/patchworklabs/patchwork/pkg/store"
)

// quiltsCommand creates the quilts command for browsing the store.
func (c *CLI) quiltsCommand() *cobra.Command {
	var (
		configFile string
		limit      int
		plain      bool
	)

	cmd := &cobra.Command{
		Use:   "quilts",
		Short: "Browse quilts saved in the store",
		Long: `Browse quilts saved in the store.

Lists stored quilts newest first. On a terminal an interactive picker
opens; selecting a quilt prints its details. Use --plain for a
non-interactive listing suitable for scripts.

The store backend comes from the config file; the in-memory backend is
only useful inside a running server, so this command is mostly used with
the mongo backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configFile)
			if err != nil {
				return err
			}
			return c.runQuilts(cmd.Context(), cfg, limit, plain)
		},
	}

	cmd.Flags().StringVar(&configFile, "config", "", "config file path (default: ~/.config/patchwork/config.toml)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 50, "maximum quilts to list (0 for all)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print a plain listing instead of the interactive picker")

	return cmd
}

// runQuilts lists stored quilts, interactively when stdout is a terminal.
func (c *CLI) runQuilts(ctx context.Context, cfg Config, limit int, plain bool) error {
	st, err := newStoreBackend(ctx, cfg.Store)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(closeCtx)
	}()

	quilts, err := st.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list quilts: %w", err)
	}
	if len(quilts) == 0 {
		printInfo("No quilts stored")
		return nil
	}

	if plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		for _, q := range quilts {
			fmt.Printf("%s  %-20s  %d vertices  %d faces  %s\n",
				shortID(q.ID), q.Name, len(q.Graph.Vertices), len(q.Graph.Faces),
				q.CreatedAt.Format(time.RFC3339))
		}
		return nil
	}

	p := tea.NewProgram(NewQuiltListModel(quilts))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	model, ok := final.(QuiltListModel)
	if !ok || model.Selected == nil {
		return nil
	}
	printQuilt(model.Selected)
	return nil
}

// printQuilt prints the details of a single stored quilt.
func printQuilt(q *store.Quilt) {
	printNewline()
	printKeyValue("id", q.ID)
	printKeyValue("name", q.Name)
	printKeyValue("hash", q.GraphHash)
	printKeyValue("vertices", fmt.Sprintf("%d", len(q.Graph.Vertices)))
	printKeyValue("edges", fmt.Sprintf("%d", len(q.Graph.Edges)))
	printKeyValue("faces", fmt.Sprintf("%d", len(q.Graph.Faces)))
	printKeyValue("passes", fmt.Sprintf("%d", q.Correction.Passes))
	printKeyValue("stable", fmt.Sprintf("%t", q.Correction.Stable))
	printKeyValue("created", q.CreatedAt.Format(time.RFC3339))
}
