// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"
)

// Manifest is the YAML sidecar written next to each export document. It
// records what was exported and when, so a later run (or the archive
// command) can tell what a document contains without parsing it.
type Manifest struct {
	ProjectKey  string    `yaml:"project_key"`
	ProjectName string    `yaml:"project_name"`
	KeyFrom     int       `yaml:"key_from,omitempty"`
	KeyTo       int       `yaml:"key_to,omitempty"`
	IssueCount  int       `yaml:"issue_count"`
	Document    string    `yaml:"document"`
	GeneratedAt time.Time `yaml:"generated_at"`
}

// WriteManifest saves the manifest next to its document, named after the
// document with a .yaml extension. Returns the manifest path.
func WriteManifest(dir string, m Manifest) (string, error) {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	name := strings.TrimSuffix(m.Document, filepath.Ext(m.Document)) + ".yaml"
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads a previously written manifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
