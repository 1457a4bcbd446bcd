package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// GlobMatch matches value against a pattern where '*' stands for any run of
// characters. Without '*' the match is exact.
func GlobMatch(pattern, value string) bool {
	parts := strings.Split(pattern, "*")
	if len(parts) == 1 {
		return pattern == value
	}

	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		offset := strings.Index(value[pos:], part)
		if offset < 0 {
			return false
		}
		if i == 0 && offset != 0 {
			return false
		}
		pos += offset + len(part)
	}

	last := parts[len(parts)-1]
	return last == "" || strings.HasSuffix(value, last)
}

// SchemaFor returns the template file configured for filename, or "" when no
// glob matches. Globs are tried in sorted order.
func (c *Config) SchemaFor(filename string) string {
	globs := make([]string, 0, len(c.Schemas))
	for glob := range c.Schemas {
		globs = append(globs, glob)
	}
	sort.Strings(globs)
	for _, glob := range globs {
		if GlobMatch(glob, filename) {
			return c.Schemas[glob]
		}
	}
	return ""
}

// ResolveSchema reads the template configured for filename. ok is false when
// no glob matches.
func (c *Config) ResolveSchema(dir, filename string) (content string, ok bool, err error) {
	schema := c.SchemaFor(filename)
	if schema == "" {
		return "", false, nil
	}
	data, err := os.ReadFile(filepath.Join(dir, schema))
	if err != nil {
		return "", false, fmt.Errorf("read schema %s: %w", schema, err)
	}
	return string(data), true, nil
}
