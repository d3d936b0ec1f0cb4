// Package cli provides Cobra command definitions for flowdex.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/catalog"
	"github.com/chazuruo/flowdex/internal/tui"
)

// SearchOptions contains the options for the search command.
type SearchOptions struct {
	ConfigPath  string
	IndexPath   string
	Query       string
	Category    string
	Integration string
	Limit       int
	JSON        bool
}

// NewSearchCommand creates the search command.
func NewSearchCommand() *cobra.Command {
	opts := &SearchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the built workflow index",
		Long: `Search the built workflow index.

Interactive mode (default):
- TUI filter with real-time results
- Preview workflow details

Non-interactive mode (--query, --json, or --no-tui):
- Plain text results
- Use --json for structured output

Filters:
- --category: only a single category
- --integration: only workflows using an integration`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.Query = args[0]
			}
			return runSearch(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.IndexPath, "index", "", "index file path (default from config)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "search query (non-interactive mode)")
	cmd.Flags().StringVar(&opts.Category, "category", "", "filter by category")
	cmd.Flags().StringVar(&opts.Integration, "integration", "", "filter by integration")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum results (0 = default)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output results as JSON")

	return cmd
}

func runSearch(opts *SearchOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	idx, _, err := loadIndex(opts.IndexPath, cfg)
	if err != nil {
		return err
	}

	nonInteractive := opts.JSON || IsNoTUI() || !cfg.TUI.Enabled ||
		opts.Category != "" || opts.Integration != ""

	if nonInteractive {
		return searchNonInteractive(idx, opts)
	}

	return searchInteractive(idx, opts)
}

// searchNonInteractive performs a one-shot search and prints results.
func searchNonInteractive(idx *catalog.Index, opts *SearchOptions) error {
	results := catalog.Search(idx, catalog.SearchOptions{
		Query:       opts.Query,
		Category:    opts.Category,
		Integration: opts.Integration,
		Limit:       opts.Limit,
	})

	if opts.JSON {
		return outputJSON(results)
	}
	return outputPlain(results)
}

// searchInteractive runs the browse TUI seeded with the query.
func searchInteractive(idx *catalog.Index, opts *SearchOptions) error {
	selected, err := tui.RunBrowse(idx, opts.Query)
	if err != nil {
		return err
	}

	if selected == nil {
		fmt.Println("Search cancelled.")
		return nil
	}

	printRecord(*selected)
	return nil
}

// printRecord prints one record's details.
func printRecord(rec catalog.Record) {
	fmt.Printf("\nSelected: %s\n", rec.Name)
	fmt.Printf("Slug: %s\n", rec.Slug)
	fmt.Printf("Category: %s\n", rec.Category)
	fmt.Printf("Path: %s\n", rec.GHPath)
	if len(rec.Integrations) > 0 {
		fmt.Printf("Integrations: [%s]\n", strings.Join(rec.Integrations, ", "))
	}
	fmt.Printf("Updated: %s\n", rec.UpdatedAt)
}

// outputPlain prints search results in plain text format.
func outputPlain(results []catalog.Record) error {
	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d result(s):\n\n", len(results))

	for i, rec := range results {
		fmt.Printf("%d. %s\n", i+1, rec.Name)
		fmt.Printf("   Slug: %s\n", rec.Slug)
		fmt.Printf("   Category: %s\n", rec.Category)
		if len(rec.Integrations) > 0 {
			fmt.Printf("   Integrations: %s\n", strings.Join(rec.Integrations, ", "))
		}
		fmt.Printf("   Path: %s\n", rec.GHPath)
		fmt.Println()
	}

	return nil
}

// outputJSON prints search results in JSON format.
func outputJSON(results []catalog.Record) error {
	output := struct {
		Count   int              `json:"count"`
		Results []catalog.Record `json:"results"`
	}{
		Count:   len(results),
		Results: results,
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
