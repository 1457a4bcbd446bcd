package testutil

import (
	"sort"
	"strings"
	"testing"
)

// AssertFileExists fails the test if the file does not exist.
func (n *NotesDir) AssertFileExists(name string) {
	n.t.Helper()
	if !n.FileExists(name) {
		n.t.Errorf("expected file to exist: %s", name)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (n *NotesDir) AssertFileNotExists(name string) {
	n.t.Helper()
	if n.FileExists(name) {
		n.t.Errorf("expected file to not exist: %s", name)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (n *NotesDir) AssertFileContains(name, substr string) {
	n.t.Helper()
	content := n.ReadFile(name)
	if !strings.Contains(content, substr) {
		n.t.Errorf("expected file %s to contain %q, got:\n%s", name, substr, content)
	}
}

// AssertNames fails the test unless the markdown files are exactly want.
func (n *NotesDir) AssertNames(want ...string) {
	n.t.Helper()
	sorted := append([]string(nil), want...)
	sort.Strings(sorted)
	got := n.Names()
	if strings.Join(got, "\n") != strings.Join(sorted, "\n") {
		n.t.Errorf("unexpected files\n got: %v\nwant: %v", got, sorted)
	}
}

// AssertHasWarning checks that the result contains a warning with the given code.
func (r *CLIResult) AssertHasWarning(t *testing.T, code string) {
	t.Helper()
	for _, w := range r.Warnings {
		if w.Code == code {
			return
		}
	}
	t.Errorf("expected warning with code %s, got warnings: %+v", code, r.Warnings)
}

// AssertExitCode checks the process exit code of the command.
func (r *CLIResult) AssertExitCode(t *testing.T, want int) {
	t.Helper()
	if r.ExitCode != want {
		t.Errorf("expected exit code %d, got %d\nRaw output: %s", want, r.ExitCode, r.RawJSON)
	}
}
