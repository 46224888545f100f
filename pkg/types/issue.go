// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Issue is one exported unit: a Jira issue normalized down to the fields the
// export document renders. Built once by the retriever and immutable after.
type Issue struct {
	// Key is the tracker-assigned identifier, "<PROJECT>-<number>".
	Key string `json:"key" yaml:"key"`

	// Summary is the issue title. Empty when the field is absent.
	Summary string `json:"summary" yaml:"summary"`

	// Status is the status display name. Empty when the field is absent.
	Status string `json:"status" yaml:"status"`

	// Description is the issue description converted to Markdown, or empty
	// when the issue has none.
	Description string `json:"description" yaml:"description"`

	// Parent references the hierarchical parent issue, or nil.
	Parent *ParentRef `json:"parent,omitempty" yaml:"parent,omitempty"`
}

// ParentRef identifies a parent issue.
type ParentRef struct {
	Key     string `json:"key" yaml:"key"`
	Summary string `json:"summary" yaml:"summary"`
}

// Project holds the project fields the exporter needs.
type Project struct {
	Key  string `json:"key" yaml:"key"`
	Name string `json:"name" yaml:"name"`

	// Archived projects are read-only in the Jira API and cannot be exported.
	Archived bool `json:"archived" yaml:"archived"`
}
