package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultCategory is assigned when no taxonomy keyword matches.
const DefaultCategory = "automation"

// Category is one taxonomy entry: an identifier plus the keywords that
// vote for it.
type Category struct {
	ID       string   `yaml:"id"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is an ordered list of categories. Order matters: when two
// categories score equally, the one listed first wins.
type Taxonomy struct {
	Categories []Category `yaml:"categories"`
}

// DefaultTaxonomy returns the built-in keyword table. Callers receive
// a fresh value each time; the taxonomy is configuration, not shared
// mutable state.
func DefaultTaxonomy() Taxonomy {
	return Taxonomy{Categories: []Category{
		{ID: "marketing", Keywords: []string{"lead", "email", "campaign", "social", "content", "seo", "analytics"}},
		{ID: "sales", Keywords: []string{"crm", "deal", "quote", "invoice", "customer", "sales", "pipeline"}},
		{ID: "business-intelligence", Keywords: []string{"report", "dashboard", "analytics", "data", "bi", "metrics"}},
		{ID: "automation", Keywords: []string{"workflow", "process", "trigger", "schedule", "notification"}},
		{ID: "communication", Keywords: []string{"slack", "email", "chat", "notification", "message"}},
		{ID: "finance", Keywords: []string{"stripe", "paypal", "invoice", "payment", "accounting"}},
		{ID: "productivity", Keywords: []string{"calendar", "task", "todo", "reminder", "scheduling"}},
		{ID: "e-commerce", Keywords: []string{"shopify", "woocommerce", "product", "order", "inventory"}},
		{ID: "hr", Keywords: []string{"employee", "recruitment", "onboarding", "time", "leave"}},
		{ID: "support", Keywords: []string{"ticket", "helpdesk", "zendesk", "support", "customer-service"}},
	}}
}

// LoadTaxonomy reads a taxonomy override from a YAML file. The file
// holds an ordered `categories` list; file order defines tie-break
// order, same as the built-in table.
func LoadTaxonomy(path string) (Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Taxonomy{}, fmt.Errorf("failed to read taxonomy file %s: %w", path, err)
	}

	var tax Taxonomy
	if err := yaml.Unmarshal(data, &tax); err != nil {
		return Taxonomy{}, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
	}

	if err := tax.Validate(); err != nil {
		return Taxonomy{}, fmt.Errorf("invalid taxonomy file %s: %w", path, err)
	}

	return tax, nil
}

// Validate checks the taxonomy for empty or duplicate category IDs.
func (t Taxonomy) Validate() error {
	if len(t.Categories) == 0 {
		return fmt.Errorf("taxonomy has no categories")
	}

	seen := make(map[string]bool, len(t.Categories))
	for i, cat := range t.Categories {
		if cat.ID == "" {
			return fmt.Errorf("category %d: id is required", i)
		}
		if seen[cat.ID] {
			return fmt.Errorf("category %d: duplicate id %q", i, cat.ID)
		}
		seen[cat.ID] = true
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("category %q: at least one keyword is required", cat.ID)
		}
	}

	return nil
}

// IDs returns the category identifiers in taxonomy order.
func (t Taxonomy) IDs() []string {
	ids := make([]string, len(t.Categories))
	for i, cat := range t.Categories {
		ids[i] = cat.ID
	}
	return ids
}

// Categorize scores the workflow's combined text against every
// category and returns the best match.
//
// The score for a category is the number of its keywords that occur as
// substrings of the lower-cased blob built from name, description, and
// the integration names. Each keyword counts at most once no matter
// how often it appears. The strictly highest score wins; ties go to
// the category listed first. When nothing matches, the result is
// DefaultCategory.
func (t Taxonomy) Categorize(name, description string, integrations []string) string {
	blob := strings.ToLower(name + " " + description + " " + strings.Join(integrations, " "))

	best := DefaultCategory
	bestScore := 0

	for _, cat := range t.Categories {
		score := 0
		for _, keyword := range cat.Keywords {
			if strings.Contains(blob, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = cat.ID
			bestScore = score
		}
	}

	return best
}
