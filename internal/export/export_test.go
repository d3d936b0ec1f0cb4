package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chazuruo/flowdex/internal/catalog"
)

func testIndex() *catalog.Index {
	return catalog.Aggregate([]catalog.Record{
		{
			Slug:         "lead-email-campaign",
			Name:         "Lead Email Campaign",
			Description:  "Collects leads",
			Integrations: []string{"Gmail", "Hubspot"},
			Category:     "marketing",
			GHPath:       "workflows/lead.json",
			UpdatedAt:    "2024-03-01T10:00:00",
		},
		{
			Slug:        "ticket-triage",
			Name:        "Ticket Triage",
			Description: "Routes tickets, with \"quotes\" and, commas",
			Category:    "support",
			GHPath:      "workflows/triage.json",
			UpdatedAt:   "2024-01-01T00:00:00",
		},
	})
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "markdown format", opts: Options{Format: FormatMarkdown}, wantErr: false},
		{name: "csv format", opts: Options{Format: FormatCSV}, wantErr: false},
		{name: "invalid format", opts: Options{Format: Format("invalid")}, wantErr: true},
		{name: "template with csv", opts: Options{Format: FormatCSV, CustomTemplate: "x.tmpl"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExporter(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewExporter() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestExportMarkdown(t *testing.T) {
	e, err := NewExporter(Options{Format: FormatMarkdown})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	out, err := e.Export(testIndex())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	for _, want := range []string{
		"# Workflow Index",
		"2 workflows",
		"marketing, support",
		"[Lead Email Campaign](workflows/lead.json)",
		"Gmail, Hubspot",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q:\n%s", want, out)
		}
	}
}

func TestExportCSV(t *testing.T) {
	e, err := NewExporter(Options{Format: FormatCSV})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	out, err := e.Export(testIndex())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "slug" || rows[0][5] != "gh_path" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "lead-email-campaign" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
	if rows[2][2] != "Routes tickets, with \"quotes\" and, commas" {
		t.Errorf("CSV quoting mangled the description: %q", rows[2][2])
	}
	if rows[1][3] != "Gmail; Hubspot" {
		t.Errorf("unexpected integrations cell: %q", rows[1][3])
	}
}

func TestExportToFile(t *testing.T) {
	e, err := NewExporter(Options{Format: FormatCSV})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "index.csv")
	out, err := e.ExportToFile(testIndex(), path)
	if err != nil {
		t.Fatalf("ExportToFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output failed: %v", err)
	}
	if string(data) != out {
		t.Error("file content differs from returned output")
	}
}

func TestExportCustomTemplate(t *testing.T) {
	tmplPath := filepath.Join(t.TempDir(), "custom.tmpl")
	if err := os.WriteFile(tmplPath, []byte("count={{.TotalCount}}"), 0644); err != nil {
		t.Fatalf("writing template failed: %v", err)
	}

	e, err := NewExporter(Options{Format: FormatMarkdown, CustomTemplate: tmplPath})
	if err != nil {
		t.Fatalf("NewExporter failed: %v", err)
	}

	out, err := e.Export(testIndex())
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if out != "count=2" {
		t.Errorf("custom template output = %q", out)
	}
}
