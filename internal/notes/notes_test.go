package notes

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/axon/internal/config"
	"github.com/aidanlsb/axon/internal/testutil"
)

func TestListMarkdown(t *testing.T) {
	dir := testutil.NewNotesDir(t).
		WithFiles("b.md", "a.md", "notes.txt", "README.md", "sub/c.md").
		Build()

	names, err := ListMarkdown(dir.Path)
	require.NoError(t, err)
	assert.Equal(t, []string{"README.md", "a.md", "b.md"}, names)
}

func TestListMarkdownSkipsDirectoriesNamedLikeNotes(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.md"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.md"), nil, 0644))

	names, err := ListMarkdown(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"x.md"}, names)
}

func TestListMarkdownMissingDir(t *testing.T) {
	_, err := ListMarkdown(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"heading", "# Release checklist\n\nbody", "Release checklist"},
		{"emphasis", "# The *real* plan\n", "The real plan"},
		{"skips level two", "## Sub\n\n# Main\n", "Main"},
		{"frontmatter title wins", "---\ntitle: From YAML\n---\n# Heading\n", "From YAML"},
		{"frontmatter without title", "---\ntype: daily\n---\n\n# Monday\n", "Monday"},
		{"none", "just text\n", ""},
		{"code fence is not a heading", "```\n# not a title\n```\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.content))
		})
	}
}

func TestFrontmatter(t *testing.T) {
	fields, err := Frontmatter("---\ntype: daily\ncount: 3\n---\nbody")
	require.NoError(t, err)
	assert.Equal(t, "daily", fields["type"])
	assert.Equal(t, 3, fields["count"])

	fields, err = Frontmatter("no frontmatter")
	require.NoError(t, err)
	assert.Empty(t, fields)

	_, err = Frontmatter("---\n: [broken\n---\n")
	assert.Error(t, err)
}

func TestCreateDailyDefaultContent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "notes")
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	path, created, err := CreateDaily(dir, nil, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(dir, "daily.2026.01.02.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "type: daily")
	assert.Contains(t, content, "2026-01-02")
	assert.Contains(t, content, "# Friday, January 2, 2026")

	fields, err := Frontmatter(content)
	require.NoError(t, err)
	assert.Equal(t, "daily", fields["type"])
}

func TestCreateDailyUsesSchema(t *testing.T) {
	dir := testutil.NewNotesDir(t).
		WithFile("templates/daily.md", "# Today\n\n- [ ] plan\n").
		Build()
	cfg := &config.Config{Schemas: map[string]string{"daily.*": "templates/daily.md"}}
	now := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	path, created, err := CreateDaily(dir.Path, cfg, now)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "daily.2026.03.04.md", filepath.Base(path))
	dir.AssertFileContains("daily.2026.03.04.md", "- [ ] plan")
}

func TestCreateDailyKeepsExisting(t *testing.T) {
	dir := testutil.NewNotesDir(t).
		WithFile("daily.2026.03.04.md", "mine\n").
		Build()
	now := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

	_, created, err := CreateDaily(dir.Path, nil, now)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "mine\n", dir.ReadFile("daily.2026.03.04.md"))
}

func TestOpenInEditorRequiresEditor(t *testing.T) {
	assert.Error(t, OpenInEditor(context.Background(), "  ", "x.md"))
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'it'"'"'s.md'`, shellQuote("it's.md"))
}
