// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads Jira credentials from a directory of plain-text files
// and provides masking for safe logging. Each file in the directory is one
// secret: the filename is the key name and the file contents (trimmed) are
// the value.
//
// Supported key files: jira-domain, jira-email, jira-api-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Mask obscures a sensitive value for logging, keeping only the last
// showChars characters visible. Values no longer than showChars are fully
// masked; an empty value becomes "<empty>".
func Mask(value string, showChars int) string {
	if value == "" {
		return "<empty>"
	}
	if len(value) <= showChars {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-showChars) + value[len(value)-showChars:]
}

// MaskEmail obscures the local part of an email address, keeping the first
// character and the domain: "a***@example.com". Values without exactly one
// "@" fall back to Mask.
func MaskEmail(email string) string {
	parts := strings.Split(email, "@")
	if len(parts) != 2 || parts[0] == "" {
		return Mask(email, 4)
	}
	return parts[0][:1] + "***@" + parts[1]
}
