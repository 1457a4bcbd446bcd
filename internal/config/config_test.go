package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || len(cfg.Schemas) != 0 {
		t.Fatalf("expected empty config, got %#v", cfg)
	}
	if !cfg.ConfirmRenames() {
		t.Error("expected confirm to default to true")
	}
	if mode, _ := cfg.GitMode(); mode != GitAuto {
		t.Errorf("expected git mode auto, got %q", mode)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `editor = "hx"

[schemas]
"daily.*" = "templates/daily.md"
"*.sop.*" = "templates/sop.md"

[refactor]
git = "never"
confirm = false

[ui]
accent = "39"
`
	if err := os.WriteFile(Path(dir), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GetEditor() != "hx" {
		t.Errorf("expected editor hx, got %q", cfg.GetEditor())
	}
	if cfg.Schemas["daily.*"] != "templates/daily.md" {
		t.Errorf("unexpected schemas: %#v", cfg.Schemas)
	}
	if mode, _ := cfg.GitMode(); mode != GitNever {
		t.Errorf("expected git mode never, got %q", mode)
	}
	if cfg.ConfirmRenames() {
		t.Error("expected confirm=false")
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("expected accent 39, got %q", cfg.UI.Accent)
	}
}

func TestLoadRejectsInvalidGitMode(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("[refactor]\ngit = \"sometimes\"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for invalid git mode")
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("schemas = [unclosed"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	confirm := false
	cfg := &Config{
		Editor:   "code",
		Schemas:  map[string]string{"daily.*": "daily.tmpl.md"},
		Refactor: RefactorConfig{Git: "always", Confirm: &confirm},
	}
	if err := Save(dir, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Editor != "code" || loaded.Schemas["daily.*"] != "daily.tmpl.md" {
		t.Fatalf("unexpected config after round trip: %#v", loaded)
	}
	if loaded.Refactor.Confirm == nil || *loaded.Refactor.Confirm {
		t.Fatalf("expected refactor.confirm=false, got %#v", loaded.Refactor.Confirm)
	}
	if loaded.UI.Accent != "" {
		t.Fatalf("expected empty accent, got %q", loaded.UI.Accent)
	}
}

func TestGlobMatch(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"daily.*", "daily.2026.01.02.md", true},
		{"daily.*", "weekly.2026.01.02.md", false},
		{"*.md", "notes.md", true},
		{"*.md", "notes.txt", false},
		{"*.sop.*", "kittynode.sop.release.v1.md", true},
		{"a*c", "abc", true},
		{"a*c", "abcd", false},
		{"exact.md", "exact.md", true},
		{"exact.md", "other.md", false},
		{"*", "anything", true},
	}
	for _, tt := range tests {
		if got := GlobMatch(tt.pattern, tt.value); got != tt.want {
			t.Errorf("GlobMatch(%q, %q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
		}
	}
}

func TestResolveSchema(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "templates"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "templates", "daily.md"), []byte("# Daily\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := &Config{Schemas: map[string]string{
		"daily.*": "templates/daily.md",
		"*.sop.*": "templates/missing.md",
	}}

	content, ok, err := cfg.ResolveSchema(dir, "daily.2026.01.02.md")
	if err != nil || !ok || content != "# Daily\n" {
		t.Fatalf("ResolveSchema daily = %q, %v, %v", content, ok, err)
	}

	if _, ok, err := cfg.ResolveSchema(dir, "notes.md"); ok || err != nil {
		t.Fatalf("expected no schema for notes.md, got ok=%v err=%v", ok, err)
	}

	if _, _, err := cfg.ResolveSchema(dir, "a.sop.b.v1.md"); err == nil {
		t.Fatal("expected error for missing template file")
	}
}

func TestHasEditor(t *testing.T) {
	t.Setenv("EDITOR", "")
	if (&Config{}).HasEditor() {
		t.Fatal("expected no editor")
	}
	if !(&Config{Editor: "hx"}).HasEditor() {
		t.Fatal("expected configured editor")
	}
	t.Setenv("EDITOR", "nano")
	if !(&Config{}).HasEditor() {
		t.Fatal("expected $EDITOR to count")
	}
}
