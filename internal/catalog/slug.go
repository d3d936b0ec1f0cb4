package catalog

import (
	"regexp"
	"strings"
)

// slugRegex matches runs of characters that should collapse to a hyphen.
var slugRegex = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a URL-friendly slug.
// Rules:
// - Lowercase
// - Replace each run of non-alphanumeric characters with a single hyphen
// - Trim leading/trailing hyphens
//
// Slugify is total and idempotent; empty input yields an empty slug,
// which callers treat as a degenerate but valid value.
//
// Examples:
//   "Lead Email Campaign" -> "lead-email-campaign"
//   "Fix: Bug #123!" -> "fix-bug-123"
func Slugify(name string) string {
	result := strings.ToLower(name)
	result = slugRegex.ReplaceAllString(result, "-")
	return strings.Trim(result, "-")
}
