// Package cli provides Cobra command definitions for flowdex.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chazuruo/flowdex/internal/export"
)

// ExportOptions contains the options for the export command.
type ExportOptions struct {
	ConfigPath     string
	IndexPath      string
	Format         string
	Out            string
	CustomTemplate string
}

// NewExportCommand creates the export command.
func NewExportCommand() *cobra.Command {
	opts := &ExportOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the workflow index to other formats",
		Long: `Export the built workflow index to different formats.

Supported formats:
- md (default): Markdown table with links
- csv: one row per workflow

Examples:
  flowdex export                        # Markdown to stdout
  flowdex export --format csv           # CSV to stdout
  flowdex export --out WORKFLOWS.md     # write to a file
  flowdex export --template list.tmpl   # custom Go template`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(opts)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "config file path")
	cmd.Flags().StringVar(&opts.IndexPath, "index", "", "index file path (default from config)")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "md", "output format (md, csv)")
	cmd.Flags().StringVarP(&opts.Out, "out", "o", "-", "output path (default: stdout)")
	cmd.Flags().StringVarP(&opts.CustomTemplate, "template", "t", "", "custom template file (md only)")

	return cmd
}

func runExport(opts *ExportOptions) error {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	idx, _, err := loadIndex(opts.IndexPath, cfg)
	if err != nil {
		return err
	}

	exporter, err := export.NewExporter(export.Options{
		Format:         export.Format(opts.Format),
		CustomTemplate: opts.CustomTemplate,
	})
	if err != nil {
		return err
	}

	output, err := exporter.ExportToFile(idx, opts.Out)
	if err != nil {
		return fmt.Errorf("failed to export index: %w", err)
	}

	if opts.Out == "-" || opts.Out == "" {
		fmt.Print(output)
	} else {
		fmt.Printf("Exported index to: %s\n", opts.Out)
	}

	return nil
}
