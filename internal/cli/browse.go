// Package cli provides Cobra command definitions for flowdex.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/tui"
)

// BrowseOptions contains the options for the browse command.
type BrowseOptions struct {
	ConfigPath string
	IndexPath  string
}

// NewBrowseCommand creates the browse command.
func NewBrowseCommand() *cobra.Command {
	opts := &BrowseOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the workflow index interactively",
		Long: `Browse the built workflow index in a TUI.

Type to filter, use ctrl+f to cycle through categories, and enter to
select a workflow. Requires a built index; run 'flowdex build' first.

With --no-tui this falls back to listing all workflows in plain text.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBrowse(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.IndexPath, "index", "", "index file path (default from config)")

	return cmd
}

func runBrowse(opts *BrowseOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	idx, _, err := loadIndex(opts.IndexPath, cfg)
	if err != nil {
		return err
	}

	if IsNoTUI() || !cfg.TUI.Enabled {
		return outputPlain(idx.Workflows)
	}

	selected, err := tui.RunBrowse(idx, "")
	if err != nil {
		return err
	}

	if selected == nil {
		fmt.Println("Browse cancelled.")
		return nil
	}

	printRecord(*selected)
	return nil
}
