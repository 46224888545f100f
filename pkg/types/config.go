// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that call the Jira API.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "jira-export/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// JiraConfig holds the Jira Cloud connection settings.
type JiraConfig struct {
	HTTPConfig `yaml:",inline"`

	// Domain is the Jira Cloud domain (e.g. "yourcompany.atlassian.net").
	Domain string `json:"domain" yaml:"domain"`

	// Email is the Atlassian account email used for basic auth.
	Email string `json:"email" yaml:"email"`

	// APIToken is the Atlassian API token paired with Email.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// MaxRetries is the number of backoff retries on HTTP 429. Retry policy
	// lives in the transport built by the CLI, never in the retrieval loop.
	MaxRetries int `json:"max_retries" yaml:"max_retries"`

	// PageSize is the number of issues requested per search page (default 100).
	PageSize int `json:"page_size" yaml:"page_size"`

	// MaxPages bounds the pagination loop against a misbehaving server
	// (default 1000 pages, about 100,000 issues).
	MaxPages int `json:"max_pages" yaml:"max_pages"`
}

// ExportConfig holds settings for the export stage.
type ExportConfig struct {
	// OutputDir is the directory where export documents are written.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// LargeProjectThreshold is the issue count above which the export command
	// suggests a key range (default 500).
	LargeProjectThreshold int `json:"large_project_threshold" yaml:"large_project_threshold"`
}

// ArchiveConfig holds settings for the local issue archive.
type ArchiveConfig struct {
	// Dir is the directory holding archive.db (default "archive").
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of find results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// Config groups all component configurations.
type Config struct {
	Jira    JiraConfig    `json:"jira" yaml:"jira"`
	Export  ExportConfig  `json:"export" yaml:"export"`
	Archive ArchiveConfig `json:"archive" yaml:"archive"`
}
