// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/jira-export/pkg/types"
)

var exportTime = time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC)

func TestGenerateHeader(t *testing.T) {
	doc := Generate("Demo Project", nil, exportTime)

	assert.True(t, strings.HasPrefix(doc, "# Demo Project\n\n"), "document starts with project title")
	assert.Contains(t, doc, "Export Date: 2026-03-15 14:30:00")
	assert.Contains(t, doc, "Total Issues: 0")
}

func TestGenerateIssueSections(t *testing.T) {
	issues := []types.Issue{
		{
			Key:         "DEMO-1",
			Summary:     "Login fails",
			Status:      "In Progress",
			Description: "Crash on **submit**",
			Parent:      &types.ParentRef{Key: "DEMO-100", Summary: "Auth epic"},
		},
		{
			Key:     "DEMO-2",
			Summary: "Bare issue",
			Status:  "Open",
		},
	}

	doc := Generate("Demo Project", issues, exportTime)

	assert.Contains(t, doc, "## DEMO-1: Login fails")
	assert.Contains(t, doc, "**Status:** In Progress")
	assert.Contains(t, doc, "**Parent:** DEMO-100 - Auth epic")
	assert.Contains(t, doc, "**Description:**\n\nCrash on **submit**")
	assert.Contains(t, doc, "Total Issues: 2")

	// The bare issue gets no parent or description lines.
	bare := doc[strings.Index(doc, "## DEMO-2"):]
	assert.Contains(t, bare, "**Status:** Open")
	assert.NotContains(t, bare, "**Parent:**")
	assert.NotContains(t, bare, "**Description:**")

	// Issues render in input order.
	assert.Less(t, strings.Index(doc, "## DEMO-1"), strings.Index(doc, "## DEMO-2"))
}

func TestGenerateTrailingNewline(t *testing.T) {
	issues := []types.Issue{{Key: "DEMO-1", Summary: "Only issue", Status: "Open"}}

	for name, doc := range map[string]string{
		"with issues": Generate("Demo Project", issues, exportTime),
		"no issues":   Generate("Demo Project", nil, exportTime),
	} {
		assert.True(t, strings.HasSuffix(doc, "---\n"), "%s: document ends with one newline after the separator", name)
		assert.False(t, strings.HasSuffix(doc, "---\n\n"), "%s: no extra blank line at end of document", name)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "export-DEMO.md", Filename("DEMO", 0, 0, false))
	assert.Equal(t, "export-DEMO-100-200.md", Filename("DEMO", 100, 200, true))
}

func TestWriteDocument(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := WriteDocument(dir, "export-DEMO.md", "# Demo\n")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export-DEMO.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Demo\n", string(data))

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteDocumentOverwrites(t *testing.T) {
	dir := t.TempDir()

	_, err := WriteDocument(dir, "export-DEMO.md", "old")
	require.NoError(t, err)
	path, err := WriteDocument(dir, "export-DEMO.md", "new")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()

	m := Manifest{
		ProjectKey:  "DEMO",
		ProjectName: "Demo Project",
		KeyFrom:     100,
		KeyTo:       200,
		IssueCount:  42,
		Document:    "export-DEMO-100-200.md",
		GeneratedAt: exportTime,
	}

	path, err := WriteManifest(dir, m)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "export-DEMO-100-200.yaml"), path)

	got, err := ReadManifest(path)
	require.NoError(t, err)
	assert.Equal(t, m.ProjectKey, got.ProjectKey)
	assert.Equal(t, m.KeyFrom, got.KeyFrom)
	assert.Equal(t, m.KeyTo, got.KeyTo)
	assert.Equal(t, m.IssueCount, got.IssueCount)
	assert.Equal(t, m.Document, got.Document)
	assert.True(t, m.GeneratedAt.Equal(got.GeneratedAt))
}

func TestManifestOmitsRangeWhenWholeProject(t *testing.T) {
	dir := t.TempDir()

	m := Manifest{
		ProjectKey:  "DEMO",
		ProjectName: "Demo Project",
		IssueCount:  7,
		Document:    "export-DEMO.md",
		GeneratedAt: exportTime,
	}

	path, err := WriteManifest(dir, m)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "key_from")
	assert.NotContains(t, string(data), "key_to")
}
