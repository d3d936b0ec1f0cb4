// Package discovery enumerates candidate workflow-definition files
// under a scan root.
package discovery

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/chazuruo/flowdex/internal/errors"
)

// DefaultExcludes are path fragments that mark a JSON file as build
// tooling rather than a workflow export.
var DefaultExcludes = []string{
	"package.json",
	"package-lock.json",
	"tsconfig.json",
	"node_modules",
}

// Options controls a discovery run.
type Options struct {
	// Excludes replaces DefaultExcludes when non-nil.
	Excludes []string
}

// Discover walks root recursively and returns every .json file whose
// path contains none of the exclusion fragments. Paths are
// deduplicated and sorted lexicographically so processing order does
// not depend on the platform's directory iteration order. A walk
// failure is fatal: discovery has no per-file isolation.
func Discover(root string, opts Options) ([]string, error) {
	excludes := opts.Excludes
	if excludes == nil {
		excludes = DefaultExcludes
	}

	seen := make(map[string]bool)
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// Skip dependency caches early rather than walking them.
			if isExcluded(d.Name(), excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if isExcluded(filepath.ToSlash(path), excludes) {
			return nil
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", errors.ErrDiscovery, root, err)
	}

	sort.Strings(files)
	return files, nil
}

// isExcluded reports whether the path contains any exclusion fragment.
func isExcluded(path string, excludes []string) bool {
	for _, fragment := range excludes {
		if strings.Contains(path, fragment) {
			return true
		}
	}
	return false
}
