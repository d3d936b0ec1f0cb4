// Package cli provides Cobra command definitions for flowdex.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/rodaine/table"
	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/build"
	"github.com/chazuruo/flowdex/internal/catalog"
	"github.com/chazuruo/flowdex/internal/config"
	"github.com/chazuruo/flowdex/internal/discovery"
)

// BuildOptions contains the options for the build command.
type BuildOptions struct {
	ConfigPath   string
	Root         string
	Out          string
	TaxonomyPath string
	Workers      int
	Quiet        bool
	Excludes     []string
}

// NewBuildCommand creates the build command.
func NewBuildCommand() *cobra.Command {
	opts := &BuildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan workflow files and build the index",
		Long: `Scan a directory tree for n8n workflow JSON files and build the
aggregated workflow index.

Every .json file under the scan root is a candidate, except tooling
files (package.json, package-lock.json, tsconfig.json) and anything
under node_modules. Malformed files are skipped with a warning and
never abort the run.

Examples:
  flowdex build                          # scan ./ and write public/workflows.json
  flowdex build --root ./workflows       # scan a specific tree
  flowdex build --out dist/index.json    # write somewhere else
  flowdex build --workers 8 --quiet      # parallel and silent`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.Root, "root", "", "directory tree to scan (default from config)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "index output path (default from config)")
	cmd.Flags().StringVar(&opts.TaxonomyPath, "taxonomy", "", "YAML taxonomy override file")
	cmd.Flags().IntVar(&opts.Workers, "workers", -1, "concurrent record builders (0 = one per CPU)")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "suppress progress output")
	cmd.Flags().StringSliceVar(&opts.Excludes, "exclude", nil, "extra path fragments to exclude (repeatable)")

	return cmd
}

func runBuild(ctx context.Context, opts *BuildOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	root := cfg.Scan.Root
	if opts.Root != "" {
		root = opts.Root
	}

	outPath := cfg.IndexPath()
	if opts.Out != "" {
		outPath = opts.Out
	}

	workers := cfg.Build.Workers
	if opts.Workers >= 0 {
		workers = opts.Workers
	}

	quiet := opts.Quiet || cfg.Build.Quiet

	tax, err := loadTaxonomy(opts.TaxonomyPath, cfg)
	if err != nil {
		return err
	}

	excludes := buildExcludes(cfg, opts.Excludes)

	out, err := build.Run(ctx, build.Options{
		Root:       root,
		OutputPath: outPath,
		Taxonomy:   tax,
		Excludes:   excludes,
		Workers:    workers,
	})
	if err != nil {
		return err
	}

	for _, f := range out.Failures {
		fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", f.Path, f.Err)
	}

	if quiet {
		return nil
	}

	fmt.Printf("Found %d workflow files\n", out.Discovered)
	fmt.Printf("Successfully processed %d workflows\n", out.Processed())
	if len(out.Failures) > 0 {
		fmt.Printf("Skipped %d file(s)\n", len(out.Failures))
	}

	if out.Processed() > 0 {
		fmt.Println()
		printCategoryCounts(out.Index)
		fmt.Println()
	}

	fmt.Printf("Index written to %s\n", outPath)
	return nil
}

// buildExcludes merges the default exclusion list with config and flag
// extras. Nil means discovery keeps its own defaults.
func buildExcludes(cfg *config.Config, flagExtras []string) []string {
	extras := append([]string{}, cfg.Scan.ExtraExcludes...)
	extras = append(extras, flagExtras...)
	if len(extras) == 0 {
		return nil
	}

	excludes := append([]string{}, discovery.DefaultExcludes...)
	return append(excludes, extras...)
}

// printCategoryCounts prints a per-category record count table.
func printCategoryCounts(idx *catalog.Index) {
	counts := make(map[string]int, len(idx.Categories))
	for _, rec := range idx.Workflows {
		counts[rec.Category]++
	}

	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	firstColStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	tbl := table.New("CATEGORY", "WORKFLOWS")
	tbl.WithHeaderFormatter(func(format string, vals ...interface{}) string {
		return headerStyle.Render(fmt.Sprintf(format, vals...))
	})
	tbl.WithFirstColumnFormatter(func(format string, vals ...interface{}) string {
		return firstColStyle.Render(fmt.Sprintf(format, vals...))
	})

	for _, cat := range idx.Categories {
		tbl.AddRow(cat, counts[cat])
	}
	tbl.Print()
}

// loadConfig loads config from an explicit path, or detects one.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}
	return config.LoadWithDefaults()
}

// loadTaxonomy resolves the taxonomy: explicit flag first, then the
// config, then the built-in table.
func loadTaxonomy(flagPath string, cfg *config.Config) (catalog.Taxonomy, error) {
	path := cfg.Taxonomy.Path
	if flagPath != "" {
		path = flagPath
	}
	if path == "" {
		return catalog.DefaultTaxonomy(), nil
	}

	tax, err := catalog.LoadTaxonomy(path)
	if err != nil {
		return catalog.Taxonomy{}, fmt.Errorf("failed to load taxonomy: %w", err)
	}
	return tax, nil
}

// loadIndex loads a built index from an explicit path or the config's
// default location.
func loadIndex(flagPath string, cfg *config.Config) (*catalog.Index, string, error) {
	path := cfg.IndexPath()
	if flagPath != "" {
		path = flagPath
	}

	idx, err := catalog.LoadIndex(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, path, fmt.Errorf("index not found at %s. Run 'flowdex build' first", path)
		}
		return nil, path, fmt.Errorf("failed to load index: %w", err)
	}
	return idx, path, nil
}
