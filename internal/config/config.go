// Package config handles the per-directory axon.toml configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// FileName is the config file looked up in the notes directory.
const FileName = "axon.toml"

// NotesDirEnv overrides the notes directory for every command.
const NotesDirEnv = "AXON_NOTES_DIR"

// Git modes for [refactor].git.
const (
	GitAuto   = "auto"
	GitAlways = "always"
	GitNever  = "never"
)

// Config represents axon.toml.
type Config struct {
	// Editor is the editor used to open notes (defaults to $EDITOR, then vim).
	Editor string `toml:"editor"`

	// Schemas maps filename globs to template files, relative to the notes directory.
	// The first matching glob in sorted order wins.
	Schemas map[string]string `toml:"schemas"`

	// Refactor holds defaults for `axon refactor`.
	Refactor RefactorConfig `toml:"refactor"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// RefactorConfig holds refactor defaults. Command-line flags win.
type RefactorConfig struct {
	// Git is one of "auto", "always" or "never".
	Git string `toml:"git"`

	// Confirm asks before renaming unless --yes is passed. Nil means true.
	Confirm *bool `toml:"confirm"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0" to "255") or a hex color ("#RRGGBB").
	Accent string `toml:"accent"`
}

// GitMode returns the normalized [refactor].git value.
func (c *Config) GitMode() (string, error) {
	mode := strings.ToLower(strings.TrimSpace(c.Refactor.Git))
	switch mode {
	case "":
		return GitAuto, nil
	case GitAuto, GitAlways, GitNever:
		return mode, nil
	}
	return "", fmt.Errorf("invalid refactor.git %q (expected auto, always or never)", c.Refactor.Git)
}

// ConfirmRenames reports whether refactor should prompt before renaming.
func (c *Config) ConfirmRenames() bool {
	return c.Refactor.Confirm == nil || *c.Refactor.Confirm
}

// GetEditor returns the editor to use, falling back to $EDITOR and then vim.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	return "vim"
}

// HasEditor reports whether an editor is set in the config or $EDITOR.
func (c *Config) HasEditor() bool {
	return strings.TrimSpace(c.Editor) != "" || os.Getenv("EDITOR") != ""
}

// Path returns the config file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// Load loads axon.toml from dir. A missing file yields an empty config.
func Load(dir string) (*Config, error) {
	path := Path(dir)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}
	return LoadFrom(path)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if _, err := config.GitMode(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &config, nil
}

// ResolveNotesDir picks the notes directory: explicit flag, then
// $AXON_NOTES_DIR, then fallback.
func ResolveNotesDir(flag, fallback string) string {
	if strings.TrimSpace(flag) != "" {
		return flag
	}
	if env := strings.TrimSpace(os.Getenv(NotesDirEnv)); env != "" {
		return env
	}
	return fallback
}

// DefaultDailyDir is where daily notes live when nothing else is configured.
func DefaultDailyDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "notes")
}
