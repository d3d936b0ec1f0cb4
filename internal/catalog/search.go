package catalog

import (
	"strings"
)

// SearchOptions contains options for searching a built index.
type SearchOptions struct {
	Query       string // Text query (substring search)
	Category    string // Filter by category
	Integration string // Filter by integration name
	Limit       int    // Maximum results (0 = unlimited)
}

// DefaultLimit is the default limit for search results.
const DefaultLimit = 50

// Search filters the index and returns matching records.
func Search(idx *Index, opts SearchOptions) []Record {
	if idx == nil {
		return nil
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}

	var results []Record
	query := strings.ToLower(opts.Query)

	for _, rec := range idx.Workflows {
		if opts.Category != "" && rec.Category != opts.Category {
			continue
		}

		if opts.Integration != "" && !hasIntegration(rec.Integrations, opts.Integration) {
			continue
		}

		if opts.Query != "" && !matchesQuery(rec, query) {
			continue
		}

		results = append(results, rec)

		if len(results) >= opts.Limit {
			break
		}
	}

	return results
}

// hasIntegration checks if the record references the integration,
// case-insensitively.
func hasIntegration(integrations []string, want string) bool {
	for _, name := range integrations {
		if strings.EqualFold(name, want) {
			return true
		}
	}
	return false
}

// matchesQuery checks if the record matches the query string.
func matchesQuery(rec Record, query string) bool {
	if strings.Contains(strings.ToLower(rec.Name), query) {
		return true
	}

	if strings.Contains(rec.Slug, query) {
		return true
	}

	if strings.Contains(strings.ToLower(rec.Description), query) {
		return true
	}

	for _, name := range rec.Integrations {
		if strings.Contains(strings.ToLower(name), query) {
			return true
		}
	}

	return false
}
