// Package workflows provides the generic document model for n8n
// workflow-definition files.
//
// Workflow exports in the wild are wildly inconsistent: fields are
// optional, node lists may be missing, and values may carry the wrong
// type. Every accessor therefore tolerates absence and type mismatch
// instead of failing.
package workflows

import (
	"encoding/json"
	"fmt"
)

// Document is a parsed workflow-definition file. It is a read-only
// view over the raw JSON object; no accessor mutates it.
type Document map[string]any

// Text returns the string value of a top-level field, or "" when the
// field is absent or not a string.
func (d Document) Text(key string) string {
	if v, ok := d[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Nodes returns the document's node descriptors. A missing or
// malformed nodes field yields an empty slice. Node entries that are
// not objects are skipped.
func (d Document) Nodes() []Document {
	raw, ok := d["nodes"].([]any)
	if !ok {
		return nil
	}

	nodes := make([]Document, 0, len(raw))
	for _, entry := range raw {
		if obj, ok := entry.(map[string]any); ok {
			nodes = append(nodes, Document(obj))
		}
	}
	return nodes
}

// UnmarshalDocument parses raw JSON bytes into a Document. The top
// level must be a JSON object; anything else is a parse error.
func UnmarshalDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal workflow document: %w", err)
	}
	return doc, nil
}
