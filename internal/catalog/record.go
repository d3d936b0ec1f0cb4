package catalog

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chazuruo/flowdex/internal/workflows"
)

// mtimeLayout formats a file modification time the way the downstream
// index consumer expects: ISO-8601 without zone offset.
const mtimeLayout = "2006-01-02T15:04:05"

// Record is the normalized projection of one workflow document. It is
// created once per successfully processed file and never mutated.
type Record struct {
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Integrations []string `json:"integrations"`
	Category     string   `json:"category"`
	// GHPath is the document's path relative to the scan root, with
	// forward slashes. The output field name is part of the format.
	GHPath    string `json:"gh_path"`
	UpdatedAt string `json:"updated_at"`
}

// BuildRecord assembles the record for one workflow document.
//
// root is the scan root the gh_path is made relative to, path the
// document's location, and mtime the file's last-modified time used
// when the document carries no usable updatedAt of its own. An
// updatedAt that is present but empty counts as absent.
func BuildRecord(tax Taxonomy, root, path string, doc workflows.Document, mtime time.Time) (Record, error) {
	name := doc.Text("name")
	if name == "" {
		name = baseName(path)
	}

	description := doc.Text("description")
	if description == "" {
		description = fmt.Sprintf("Automated workflow for %s", strings.ToLower(name))
	}

	integrations := ExtractIntegrations(doc)

	updatedAt := doc.Text("updatedAt")
	if updatedAt == "" {
		updatedAt = mtime.Format(mtimeLayout)
	}

	relPath, err := filepath.Rel(root, path)
	if err != nil {
		return Record{}, fmt.Errorf("failed to resolve path %s relative to %s: %w", path, root, err)
	}

	return Record{
		Slug:         Slugify(name),
		Name:         name,
		Description:  description,
		Integrations: integrations,
		Category:     tax.Categorize(name, description, integrations),
		GHPath:       filepath.ToSlash(relPath),
		UpdatedAt:    updatedAt,
	}, nil
}

// baseName returns the file name without directory or extension.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
