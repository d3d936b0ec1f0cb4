// Package cli provides Cobra command definitions for flowdex.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/catalog"
)

// CategoriesOptions contains the options for the categories command.
type CategoriesOptions struct {
	ConfigPath   string
	IndexPath    string
	TaxonomyPath string
	JSON         bool
}

// NewCategoriesCommand creates the categories command.
func NewCategoriesCommand() *cobra.Command {
	opts := &CategoriesOptions{}

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show the category taxonomy and workflow counts",
		Long: `Show the classification taxonomy.

Lists every category with its keywords. When a built index is present,
the table also shows how many workflows landed in each category.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.IndexPath, "index", "", "index file path (default from config)")
	cmd.Flags().StringVar(&opts.TaxonomyPath, "taxonomy", "", "YAML taxonomy override file")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "output as JSON")

	return cmd
}

func runCategories(opts *CategoriesOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	tax, err := loadTaxonomy(opts.TaxonomyPath, cfg)
	if err != nil {
		return err
	}

	// Counts are optional; a missing index just leaves them at zero.
	counts := make(map[string]int)
	haveIndex := false
	if idx, _, err := loadIndex(opts.IndexPath, cfg); err == nil {
		haveIndex = true
		for _, rec := range idx.Workflows {
			counts[rec.Category]++
		}
	}

	if opts.JSON {
		return categoriesJSON(tax, counts, haveIndex)
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	firstColStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	columns := []interface{}{"CATEGORY", "KEYWORDS"}
	if haveIndex {
		columns = append(columns, "WORKFLOWS")
	}

	tbl := table.New(columns...)
	tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
		return headerStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return firstColStyle.Render(fmt.Sprintf(format, vals...))
	})

	for _, cat := range tax.Categories {
		row := []interface{}{cat.ID, strings.Join(cat.Keywords, ", ")}
		if haveIndex {
			row = append(row, counts[cat.ID])
		}
		tbl.AddRow(row...)
	}
	tbl.Print()

	fmt.Printf("\nDefault category: %s\n", catalog.DefaultCategory)
	return nil
}

func categoriesJSON(tax catalog.Taxonomy, counts map[string]int, haveIndex bool) error {
	type categoryInfo struct {
		ID        string   `json:"id"`
		Keywords  []string `json:"keywords"`
		Workflows *int     `json:"workflows,omitempty"`
	}

	var out []categoryInfo
	for _, cat := range tax.Categories {
		info := categoryInfo{ID: cat.ID, Keywords: cat.Keywords}
		if haveIndex {
			n := counts[cat.ID]
			info.Workflows = &n
		}
		out = append(out, info)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
