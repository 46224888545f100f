// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package adf converts Atlassian Document Format trees to Markdown.
//
// Conversion is a pure function over the node tree: no I/O, no shared state,
// safe to call concurrently. Unknown node types degrade by recursing into
// their children so text content is never silently dropped.
package adf

// Node is one node of an Atlassian Document Format tree as returned by the
// Jira Cloud REST API. Type is an open tag; Content order is significant.
type Node struct {
	Type    string         `json:"type"`
	Content []Node         `json:"content,omitempty"`
	Text    string         `json:"text,omitempty"`
	Marks   []Mark         `json:"marks,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
}

// Mark is an inline formatting mark on a text node. Marks apply as nested
// Markdown wrappers in slice order.
type Mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// attrString returns the string value of an attribute, or "" when the
// attribute is absent or not a string.
func attrString(attrs map[string]any, key string) string {
	if v, ok := attrs[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// attrPresent reports whether the attribute exists with a string value,
// returning it alongside. Distinguishes a present-but-empty attribute from
// an absent one.
func attrPresent(attrs map[string]any, key string) (string, bool) {
	if v, ok := attrs[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}
	return "", false
}

// attrInt returns the integer value of an attribute, or fallback. JSON
// numbers decode as float64 in an any-typed map.
func attrInt(attrs map[string]any, key string, fallback int) int {
	if v, ok := attrs[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return fallback
}
