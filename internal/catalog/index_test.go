package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleRecords() []Record {
	return []Record{
		{
			Slug:         "lead-email-campaign",
			Name:         "Lead Email Campaign",
			Description:  "Collects leads",
			Integrations: []string{"Gmail"},
			Category:     "marketing",
			GHPath:       "workflows/lead.json",
			UpdatedAt:    "2024-03-01T10:00:00",
		},
		{
			Slug:         "nightly-report",
			Name:         "Nightly Report",
			Description:  "Automated workflow for nightly report",
			Integrations: []string{"Slack", "Postgres"},
			Category:     "business-intelligence",
			GHPath:       "workflows/report.json",
			UpdatedAt:    "2024-01-01T00:00:00",
		},
		{
			Slug:        "invoice-sync",
			Name:        "Invoice Sync",
			Description: "Pushes invoices",
			Category:    "marketing",
			GHPath:      "workflows/invoice.json",
			UpdatedAt:   "2024-02-02T00:00:00",
		},
	}
}

func TestAggregate(t *testing.T) {
	records := sampleRecords()
	idx := Aggregate(records)

	if idx.TotalCount != 3 {
		t.Errorf("TotalCount = %d, want 3", idx.TotalCount)
	}
	if idx.Version != Version {
		t.Errorf("Version = %q, want %q", idx.Version, Version)
	}
	if len(idx.Workflows) != 3 {
		t.Errorf("Workflows length = %d, want 3", len(idx.Workflows))
	}

	want := []string{"business-intelligence", "marketing"}
	if !reflect.DeepEqual(idx.Categories, want) {
		t.Errorf("Categories = %v, want %v", idx.Categories, want)
	}

	if _, err := time.Parse(time.RFC3339, idx.GeneratedAt); err != nil {
		t.Errorf("GeneratedAt %q is not RFC 3339: %v", idx.GeneratedAt, err)
	}
}

func TestAggregateEmpty(t *testing.T) {
	idx := Aggregate(nil)

	if idx.TotalCount != 0 {
		t.Errorf("TotalCount = %d, want 0", idx.TotalCount)
	}
	if len(idx.Categories) != 0 {
		t.Errorf("Categories = %v, want empty", idx.Categories)
	}

	// The serialized form must carry empty arrays, not nulls.
	data, err := idx.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"workflows":[]`) {
		t.Errorf("expected empty workflows array in %s", s)
	}
	if !strings.Contains(s, `"categories":[]`) {
		t.Errorf("expected empty categories array in %s", s)
	}
	if !strings.Contains(s, `"total_count":0`) {
		t.Errorf("expected zero total_count in %s", s)
	}
}

func TestMarshalCompactAndLiteral(t *testing.T) {
	idx := Aggregate([]Record{{
		Slug:      "commandes-clients",
		Name:      "Commandes & Clients — café",
		Category:  "e-commerce",
		GHPath:    "workflows/café.json",
		UpdatedAt: "2024-01-01T00:00:00",
	}})

	data, err := idx.Marshal()
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	s := string(data)

	if strings.ContainsAny(s, "\n\t") || strings.Contains(s, ": ") {
		t.Errorf("expected compact serialization, got %s", s)
	}
	if !strings.Contains(s, "café") {
		t.Errorf("non-ASCII characters must be preserved literally, got %s", s)
	}
	if strings.Contains(s, `&`) {
		t.Errorf("ampersand must not be HTML-escaped, got %s", s)
	}

	// Round trip to confirm the output stays valid JSON.
	var back Index
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if back.Workflows[0].Name != "Commandes & Clients — café" {
		t.Errorf("round trip mangled name: %q", back.Workflows[0].Name)
	}
}

func TestIndexSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "public", "workflows.json")

	idx := Aggregate(sampleRecords())
	if err := idx.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}

	if loaded.TotalCount != idx.TotalCount {
		t.Errorf("TotalCount mismatch: got %d, want %d", loaded.TotalCount, idx.TotalCount)
	}
	if !reflect.DeepEqual(loaded.Categories, idx.Categories) {
		t.Errorf("Categories mismatch: got %v, want %v", loaded.Categories, idx.Categories)
	}
	if len(loaded.Workflows) != 3 || loaded.Workflows[0].Slug != "lead-email-campaign" {
		t.Errorf("Workflows mismatch: %+v", loaded.Workflows)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.Contains(entry.Name(), ".tmp-") {
			t.Errorf("leftover temp file: %s", entry.Name())
		}
	}
}

func TestIndexSaveOverwrites(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "workflows.json")

	first := Aggregate(sampleRecords())
	if err := first.Save(path); err != nil {
		t.Fatalf("first Save failed: %v", err)
	}

	second := Aggregate(nil)
	if err := second.Save(path); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	loaded, err := LoadIndex(path)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if loaded.TotalCount != 0 {
		t.Errorf("expected full overwrite, got total_count %d", loaded.TotalCount)
	}
}

func TestLoadIndexNotExist(t *testing.T) {
	_, err := LoadIndex(filepath.Join(t.TempDir(), "missing.json"))
	if !os.IsNotExist(err) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}
