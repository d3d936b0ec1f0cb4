// Package export renders a built workflow index in human-oriented
// formats. The JSON artifact itself is the pipeline's job; this is a
// convenience dump for quick inspection and docs.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/chazuruo/flowdex/internal/catalog"
)

// Format represents the export format.
type Format string

const (
	// FormatMarkdown exports as a Markdown table.
	FormatMarkdown Format = "md"
	// FormatCSV exports as CSV.
	FormatCSV Format = "csv"
)

// Exporter renders an index in a fixed format.
type Exporter struct {
	format   Format
	template *template.Template
}

// Options contains export options.
type Options struct {
	Format Format
	// CustomTemplate is an optional template file overriding the
	// built-in Markdown layout. Ignored for CSV.
	CustomTemplate string
}

// NewExporter creates a new exporter.
func NewExporter(opts Options) (*Exporter, error) {
	e := &Exporter{format: opts.Format}

	switch opts.Format {
	case FormatCSV:
		if opts.CustomTemplate != "" {
			return nil, fmt.Errorf("custom templates only apply to Markdown export")
		}
	case FormatMarkdown:
		tmplContent := builtinMarkdownTemplate
		if opts.CustomTemplate != "" {
			data, err := os.ReadFile(opts.CustomTemplate)
			if err != nil {
				return nil, fmt.Errorf("reading template file: %w", err)
			}
			tmplContent = string(data)
		}
		tmpl, err := template.New("export").Parse(tmplContent)
		if err != nil {
			return nil, fmt.Errorf("parsing template: %w", err)
		}
		e.template = tmpl
	default:
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}

	return e, nil
}

// Export renders the index and returns the output.
func (e *Exporter) Export(idx *catalog.Index) (string, error) {
	switch e.format {
	case FormatCSV:
		return exportCSV(idx)
	case FormatMarkdown:
		var buf bytes.Buffer
		if err := e.template.Execute(&buf, templateData(idx)); err != nil {
			return "", fmt.Errorf("executing template: %w", err)
		}
		return buf.String(), nil
	}
	return "", fmt.Errorf("unsupported format: %s", e.format)
}

// ExportToFile renders the index and writes it to path. "-" or the
// empty string writes nothing and is the caller's cue to print.
func (e *Exporter) ExportToFile(idx *catalog.Index, path string) (string, error) {
	output, err := e.Export(idx)
	if err != nil {
		return "", err
	}

	if path != "" && path != "-" {
		if err := os.WriteFile(path, []byte(output), 0644); err != nil {
			return "", fmt.Errorf("writing output file: %w", err)
		}
	}

	return output, nil
}

// exportCSV renders one row per workflow record.
func exportCSV(idx *catalog.Index) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"slug", "name", "description", "integrations", "category", "gh_path", "updated_at"}); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range idx.Workflows {
		row := []string{
			rec.Slug,
			rec.Name,
			rec.Description,
			strings.Join(rec.Integrations, "; "),
			rec.Category,
			rec.GHPath,
			rec.UpdatedAt,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}

	return buf.String(), nil
}

// templateData creates template data from the index.
func templateData(idx *catalog.Index) map[string]interface{} {
	rows := make([]map[string]interface{}, len(idx.Workflows))
	for i, rec := range idx.Workflows {
		rows[i] = map[string]interface{}{
			"Slug":         rec.Slug,
			"Name":         rec.Name,
			"Description":  rec.Description,
			"Integrations": strings.Join(rec.Integrations, ", "),
			"Category":     rec.Category,
			"GHPath":       rec.GHPath,
			"UpdatedAt":    rec.UpdatedAt,
		}
	}

	return map[string]interface{}{
		"Workflows":   rows,
		"TotalCount":  idx.TotalCount,
		"Categories":  strings.Join(idx.Categories, ", "),
		"GeneratedAt": idx.GeneratedAt,
		"Version":     idx.Version,
	}
}

// builtinMarkdownTemplate is the default Markdown template.
const builtinMarkdownTemplate = "# Workflow Index\n\n" +
	"{{.TotalCount}} workflows. Categories: {{.Categories}}\n\n" +
	"| Workflow | Category | Integrations | Updated |\n" +
	"|---|---|---|---|\n" +
	"{{range .Workflows}}| [{{.Name}}]({{.GHPath}}) | {{.Category}} | {{.Integrations}} | {{.UpdatedAt}} |\n{{end}}" +
	"\n*Generated {{.GeneratedAt}} (format {{.Version}})*\n"
