package catalog

import (
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/chazuruo/flowdex/internal/workflows"
)

func TestBuildRecord(t *testing.T) {
	tax := DefaultTaxonomy()
	mtime := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)

	doc := workflows.Document{
		"name":        "Lead Email Campaign",
		"description": "Collects leads from forms",
		"updatedAt":   "2024-03-01T10:00:00",
		"nodes": []any{
			map[string]any{"type": "n8n-nodes-base.gmail"},
		},
	}

	rec, err := BuildRecord(tax, "/repo", filepath.Join("/repo", "workflows", "lead.json"), doc, mtime)
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}

	if rec.Slug != "lead-email-campaign" {
		t.Errorf("Slug = %q, want lead-email-campaign", rec.Slug)
	}
	if rec.Name != "Lead Email Campaign" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.Description != "Collects leads from forms" {
		t.Errorf("Description = %q", rec.Description)
	}
	if !reflect.DeepEqual(rec.Integrations, []string{"Gmail"}) {
		t.Errorf("Integrations = %v, want [Gmail]", rec.Integrations)
	}
	if rec.Category != "marketing" {
		t.Errorf("Category = %q, want marketing", rec.Category)
	}
	if rec.GHPath != "workflows/lead.json" {
		t.Errorf("GHPath = %q, want workflows/lead.json", rec.GHPath)
	}
	if rec.UpdatedAt != "2024-03-01T10:00:00" {
		t.Errorf("UpdatedAt = %q, want document value", rec.UpdatedAt)
	}
}

func TestBuildRecordDefaults(t *testing.T) {
	tax := DefaultTaxonomy()
	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rec, err := BuildRecord(tax, "/repo", "/repo/workflows/misc_task.json", workflows.Document{}, mtime)
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}

	if rec.Name != "misc_task" {
		t.Errorf("Name = %q, want file base name misc_task", rec.Name)
	}
	if rec.Description != "Automated workflow for misc_task" {
		t.Errorf("Description = %q", rec.Description)
	}
	if len(rec.Integrations) != 0 {
		t.Errorf("Integrations = %v, want empty", rec.Integrations)
	}
	if rec.Category != DefaultCategory {
		t.Errorf("Category = %q, want %q", rec.Category, DefaultCategory)
	}
	if rec.UpdatedAt != "2024-01-01T00:00:00" {
		t.Errorf("UpdatedAt = %q, want mtime fallback 2024-01-01T00:00:00", rec.UpdatedAt)
	}
	if rec.Slug != "misc-task" {
		t.Errorf("Slug = %q, want misc-task", rec.Slug)
	}
}

func TestBuildRecordEmptyUpdatedAtFallsBack(t *testing.T) {
	tax := DefaultTaxonomy()
	mtime := time.Date(2023, 8, 20, 14, 5, 9, 0, time.UTC)

	doc := workflows.Document{
		"name":      "Nightly Report",
		"updatedAt": "",
	}

	rec, err := BuildRecord(tax, "/repo", "/repo/report.json", doc, mtime)
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}

	if rec.UpdatedAt != "2023-08-20T14:05:09" {
		t.Errorf("UpdatedAt = %q, want mtime fallback for empty updatedAt", rec.UpdatedAt)
	}
}

func TestBuildRecordForwardSlashPath(t *testing.T) {
	tax := DefaultTaxonomy()

	rec, err := BuildRecord(tax, "/repo",
		filepath.Join("/repo", "n8n", "exports", "deal flow.json"),
		workflows.Document{}, time.Now())
	if err != nil {
		t.Fatalf("BuildRecord failed: %v", err)
	}

	if rec.GHPath != "n8n/exports/deal flow.json" {
		t.Errorf("GHPath = %q, want forward-slash relative path", rec.GHPath)
	}
}
