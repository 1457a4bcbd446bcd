package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/axon/internal/atomicfile"
)

type persistedConfig struct {
	Editor   *string              `toml:"editor,omitempty"`
	Schemas  map[string]string    `toml:"schemas,omitempty"`
	Refactor *persistedRefactor   `toml:"refactor,omitempty"`
	UI       *persistedUISettings `toml:"ui,omitempty"`
}

type persistedRefactor struct {
	Git     *string `toml:"git,omitempty"`
	Confirm *bool   `toml:"confirm,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes cfg to axon.toml in dir.
func Save(dir string, cfg *Config) error {
	return SaveTo(Path(dir), cfg)
}

// SaveTo writes cfg to path atomically, omitting empty settings.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{Editor: nonEmptyPtr(cfg.Editor)}
	if len(cfg.Schemas) > 0 {
		out.Schemas = cfg.Schemas
	}
	if git := nonEmptyPtr(cfg.Refactor.Git); git != nil || cfg.Refactor.Confirm != nil {
		out.Refactor = &persistedRefactor{Git: git, Confirm: cfg.Refactor.Confirm}
	}
	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
