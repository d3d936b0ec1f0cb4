package build

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chazuruo/flowdex/internal/catalog"
)

// writeFile writes content at a relative path under dir, creating
// parent directories.
func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	full := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return full
}

func TestRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "workflows/lead.json",
		`{"name": "Lead Email Campaign", "nodes": [{"type": "n8n-nodes-base.gmail"}]}`)
	writeFile(t, root, "workflows/misc_task.json", `{}`)
	writeFile(t, root, "package.json", `{"name": "ignored"}`)

	mtime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	if err := os.Chtimes(filepath.Join(root, "workflows", "misc_task.json"), mtime, mtime); err != nil {
		t.Fatalf("chtimes failed: %v", err)
	}

	outPath := filepath.Join(root, "public", "workflows.json")
	out, err := Run(context.Background(), Options{
		Root:       root,
		OutputPath: outPath,
		Taxonomy:   catalog.DefaultTaxonomy(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.Discovered != 2 {
		t.Errorf("Discovered = %d, want 2", out.Discovered)
	}
	if out.Processed() != 2 {
		t.Errorf("Processed = %d, want 2", out.Processed())
	}
	if len(out.Failures) != 0 {
		t.Errorf("Failures = %v, want none", out.Failures)
	}

	// Records are sorted by gh_path.
	recs := out.Index.Workflows
	if recs[0].GHPath != "workflows/lead.json" || recs[1].GHPath != "workflows/misc_task.json" {
		t.Fatalf("unexpected record order: %q, %q", recs[0].GHPath, recs[1].GHPath)
	}

	lead := recs[0]
	if lead.Slug != "lead-email-campaign" {
		t.Errorf("Slug = %q", lead.Slug)
	}
	if lead.Category != "marketing" {
		t.Errorf("Category = %q, want marketing", lead.Category)
	}
	if len(lead.Integrations) != 1 || lead.Integrations[0] != "Gmail" {
		t.Errorf("Integrations = %v, want [Gmail]", lead.Integrations)
	}

	misc := recs[1]
	if misc.Name != "misc_task" {
		t.Errorf("Name = %q, want misc_task", misc.Name)
	}
	if misc.Description != "Automated workflow for misc_task" {
		t.Errorf("Description = %q", misc.Description)
	}
	if misc.Category != catalog.DefaultCategory {
		t.Errorf("Category = %q, want default", misc.Category)
	}
	if misc.UpdatedAt != "2024-01-01T00:00:00" {
		t.Errorf("UpdatedAt = %q, want mtime fallback", misc.UpdatedAt)
	}

	// The artifact exists and loads back.
	loaded, err := catalog.LoadIndex(outPath)
	if err != nil {
		t.Fatalf("LoadIndex failed: %v", err)
	}
	if loaded.TotalCount != 2 {
		t.Errorf("persisted total_count = %d, want 2", loaded.TotalCount)
	}
}

func TestRunIsolatesBadFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "good.json", `{"name": "Invoice Sync"}`)
	writeFile(t, root, "bad.json", `{not json at all`)
	writeFile(t, root, "worse.json", `[1, 2, 3]`)

	out, err := Run(context.Background(), Options{
		Root:     root,
		Taxonomy: catalog.DefaultTaxonomy(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.Processed() != 1 {
		t.Errorf("Processed = %d, want 1", out.Processed())
	}
	if len(out.Failures) != 2 {
		t.Fatalf("Failures = %d, want 2", len(out.Failures))
	}
	for _, f := range out.Failures {
		if f.Err == nil {
			t.Errorf("failure %s carries no diagnostic", f.Path)
		}
	}
	if out.Index.Workflows[0].Name != "Invoice Sync" {
		t.Errorf("surviving record = %+v", out.Index.Workflows[0])
	}
}

func TestRunEmptyCorpus(t *testing.T) {
	root := t.TempDir()
	outPath := filepath.Join(root, "out", "workflows.json")

	out, err := Run(context.Background(), Options{
		Root:       root,
		OutputPath: outPath,
		Taxonomy:   catalog.DefaultTaxonomy(),
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if out.Discovered != 0 || out.Processed() != 0 {
		t.Errorf("expected empty run, got discovered=%d processed=%d", out.Discovered, out.Processed())
	}
	if len(out.Index.Categories) != 0 {
		t.Errorf("Categories = %v, want empty", out.Index.Categories)
	}

	// Even an empty corpus produces the artifact.
	if _, err := os.Stat(outPath); err != nil {
		t.Errorf("expected output file: %v", err)
	}
}

func TestRunMissingRootFatal(t *testing.T) {
	_, err := Run(context.Background(), Options{
		Root:     filepath.Join(t.TempDir(), "nope"),
		Taxonomy: catalog.DefaultTaxonomy(),
	})
	if err == nil {
		t.Fatal("expected discovery error")
	}
}

func TestRunParallelDeterminism(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"e", "a", "c", "b", "d"} {
		writeFile(t, root, "workflows/"+name+".json", `{"name": "`+name+`"}`)
	}

	var first []string
	for run := 0; run < 3; run++ {
		out, err := Run(context.Background(), Options{
			Root:     root,
			Taxonomy: catalog.DefaultTaxonomy(),
			Workers:  4,
		})
		if err != nil {
			t.Fatalf("Run failed: %v", err)
		}

		var order []string
		for _, rec := range out.Index.Workflows {
			order = append(order, rec.GHPath)
		}

		if run == 0 {
			first = order
			continue
		}
		for i := range first {
			if order[i] != first[i] {
				t.Fatalf("run %d order differs: %v vs %v", run, order, first)
			}
		}
	}

	want := []string{"workflows/a.json", "workflows/b.json", "workflows/c.json", "workflows/d.json", "workflows/e.json"}
	for i, p := range want {
		if first[i] != p {
			t.Errorf("record %d: got %q, want %q", i, first[i], p)
		}
	}
}
