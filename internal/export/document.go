// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export assembles normalized issues into a single Markdown document
// and writes it, with a YAML manifest sidecar, to the output directory.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/jira-export/pkg/types"
)

// Generate renders the full export document: a title header with date and
// issue count, then one section per issue in input order.
func Generate(projectName string, issues []types.Issue, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", projectName)
	fmt.Fprintf(&b, "Export Date: %s\n", now.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Total Issues: %d\n\n", len(issues))
	b.WriteString("---\n\n")

	for _, issue := range issues {
		writeIssue(&b, issue)
		b.WriteString("\n")
	}

	// Exactly one newline after the final separator.
	return strings.TrimSuffix(b.String(), "\n")
}

// writeIssue renders one issue section: heading with key and summary, bold
// status and parent lines, description body, separator.
func writeIssue(b *strings.Builder, issue types.Issue) {
	fmt.Fprintf(b, "## %s: %s\n\n", issue.Key, issue.Summary)

	if issue.Status != "" {
		fmt.Fprintf(b, "**Status:** %s\n\n", issue.Status)
	}
	if issue.Parent != nil {
		fmt.Fprintf(b, "**Parent:** %s - %s\n\n", issue.Parent.Key, issue.Parent.Summary)
	}
	if issue.Description != "" {
		b.WriteString("**Description:**\n\n")
		b.WriteString(issue.Description)
		b.WriteString("\n\n")
	}

	b.WriteString("---\n")
}

// Filename returns the document name for a scope: export-<PROJECT>.md for a
// whole project, export-<PROJECT>-<from>-<to>.md for a key range.
func Filename(projectKey string, keyFrom, keyTo int, hasRange bool) string {
	if hasRange {
		return fmt.Sprintf("export-%s-%d-%d.md", projectKey, keyFrom, keyTo)
	}
	return fmt.Sprintf("export-%s.md", projectKey)
}

// WriteDocument writes content into dir under name, creating dir if needed.
// The write goes through a temp file renamed into place so a failed write
// never leaves a truncated export behind. Returns the full path.
func WriteDocument(dir, name, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	destPath := filepath.Join(dir, name)

	tmpFile, err := os.CreateTemp(dir, ".export-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing document: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}
