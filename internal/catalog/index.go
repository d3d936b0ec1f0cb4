// Package catalog implements the extraction-and-classification core:
// slug normalization, integration extraction, category classification,
// record building, and aggregation into the workflow index document.
package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Version is the index format version tag.
const Version = "1.0"

// Index is the aggregate output document: every successfully built
// record plus derived collection-level statistics. It is constructed
// exactly once per run and overwrites any prior run's output.
type Index struct {
	Workflows   []Record `json:"workflows"`
	TotalCount  int      `json:"total_count"`
	Categories  []string `json:"categories"`
	GeneratedAt string   `json:"generated_at"`
	Version     string   `json:"version"`
}

// Aggregate folds records into an Index. It never fails: an empty
// input yields an index with zero workflows and no categories.
// Categories are the distinct category values present, sorted so that
// output is stable across runs.
func Aggregate(records []Record) *Index {
	if records == nil {
		records = []Record{}
	}

	seen := make(map[string]bool)
	categories := []string{}
	for _, rec := range records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			categories = append(categories, rec.Category)
		}
	}
	sort.Strings(categories)

	return &Index{
		Workflows:   records,
		TotalCount:  len(records),
		Categories:  categories,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     Version,
	}
}

// Marshal serializes the index compactly. HTML escaping is disabled so
// non-ASCII names and characters like & pass through literally.
func (i *Index) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(i); err != nil {
		return nil, fmt.Errorf("failed to marshal index: %w", err)
	}
	// Encoder appends a newline; the artifact is a single compact line.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Save writes the index to path, creating the parent directory if
// needed. The write goes through a temp file in the same directory
// followed by a rename, so a crashed run never leaves a truncated
// index behind.
func (i *Index) Save(path string) error {
	data, err := i.Marshal()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.tmp-%s", filepath.Base(path), uuid.New().String()))
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index %s: %w", path, err)
	}

	return nil
}

// LoadIndex reads a previously built index from disk.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var idx Index
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("failed to parse index %s: %w", path, err)
	}

	return &idx, nil
}
