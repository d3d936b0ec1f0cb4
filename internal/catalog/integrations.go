package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/chazuruo/flowdex/internal/workflows"
)

// maxIntegrations caps how many integration names a record carries.
const maxIntegrations = 5

// nodePrefix is the plugin-namespace marker on n8n node types.
const nodePrefix = "n8n-nodes-"

// ExtractIntegrations derives human-readable integration names from a
// workflow document's node types.
//
// Each node type is rewritten in order: the leading plugin-namespace
// marker and a leading "base." segment are stripped, hyphens become
// spaces, and the result is title-cased. Names are deduplicated
// preserving first-seen order, then truncated to the first five. The
// upstream n8n exporter collected these into an unordered set, making
// which five survived a coin flip; first-seen order keeps the
// selection deterministic.
func ExtractIntegrations(doc workflows.Document) []string {
	// Non-nil so a node-less document still serializes as [].
	names := []string{}
	seen := make(map[string]bool)

	// Casers are stateful; records are built concurrently, so each
	// call gets its own.
	titleCaser := cases.Title(language.English)

	for _, node := range doc.Nodes() {
		nodeType := node.Text("type")
		if nodeType == "" {
			continue
		}

		nodeType = strings.TrimPrefix(nodeType, nodePrefix)
		nodeType = strings.TrimPrefix(nodeType, "base.")

		name := titleCaser.String(strings.ReplaceAll(nodeType, "-", " "))
		if seen[name] {
			continue
		}
		seen[name] = true

		names = append(names, name)
		if len(names) == maxIntegrations {
			break
		}
	}

	return names
}
