// Package testutil provides reusable test utilities for axon tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

// NotesDir represents a temporary notes directory for testing.
type NotesDir struct {
	Path  string
	t     *testing.T
	files map[string]string
}

// NewNotesDir creates a new notes directory builder.
// Call Build() to create the actual directory.
func NewNotesDir(t *testing.T) *NotesDir {
	t.Helper()
	return &NotesDir{
		t:     t,
		files: make(map[string]string),
	}
}

// WithFile adds a file to the directory.
func (n *NotesDir) WithFile(name, content string) *NotesDir {
	n.files[name] = content
	return n
}

// WithFiles adds empty files to the directory.
func (n *NotesDir) WithFiles(names ...string) *NotesDir {
	for _, name := range names {
		n.files[name] = ""
	}
	return n
}

// WithConfig sets the axon.toml content.
func (n *NotesDir) WithConfig(toml string) *NotesDir {
	n.files["axon.toml"] = toml
	return n
}

// Build creates the directory and all configured files.
func (n *NotesDir) Build() *NotesDir {
	n.t.Helper()
	n.Path = n.t.TempDir()
	for name, content := range n.files {
		n.WriteFile(name, content)
	}
	return n
}

// WriteFile writes a file into the directory, creating parents as needed.
func (n *NotesDir) WriteFile(name, content string) {
	n.t.Helper()
	fullPath := filepath.Join(n.Path, name)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		n.t.Fatalf("failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
		n.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile returns the content of a file in the directory.
func (n *NotesDir) ReadFile(name string) string {
	n.t.Helper()
	content, err := os.ReadFile(filepath.Join(n.Path, name))
	if err != nil {
		n.t.Fatalf("failed to read file %s: %v", name, err)
	}
	return string(content)
}

// FileExists checks if a file exists in the directory.
func (n *NotesDir) FileExists(name string) bool {
	_, err := os.Stat(filepath.Join(n.Path, name))
	return err == nil
}

// Names returns the sorted names of the markdown files in the directory.
func (n *NotesDir) Names() []string {
	n.t.Helper()
	entries, err := os.ReadDir(n.Path)
	if err != nil {
		n.t.Fatalf("failed to read directory: %v", err)
	}
	var names []string
	for _, e := range entries {
		if e.Type().IsRegular() && strings.HasSuffix(e.Name(), ".md") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names
}
