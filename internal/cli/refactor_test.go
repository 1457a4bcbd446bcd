package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidanlsb/axon/internal/journal"
	"github.com/aidanlsb/axon/internal/testutil"
)

const (
	featFrom = "{repo}.feat.{feature}.{type}.{variant}.v{N}"
	featTo   = "{repo}.{feature}.{type}.{variant}.v{N}"
)

func featureNotes(t *testing.T) *testutil.NotesDir {
	return testutil.NewNotesDir(t).
		WithFile("kittynode.feat.sync.prd.base.v1.md", "# Sync\n").
		WithFiles(
			"kittynode.feat.sync.spec.base.v2.md",
			"kittynode.sop.release.v1.md",
			"README.md",
			"daily.2026.01.05.md",
		).
		Build()
}

func TestRefactorDryRun(t *testing.T) {
	n := featureNotes(t)

	r := n.RunCLI(runner(t), "refactor", "--from", featFrom, "--to", featTo, "--dry-run", "--no-git").MustSucceed(t)
	r.AssertExitCode(t, exitOK)

	assert.Equal(t, "mv", r.DataString("backend"))
	assert.Equal(t, 5, r.DataInt("analyzed"))
	assert.Equal(t, 2, r.DataInt("matched"))
	assert.Equal(t, 1, r.DataInt("skipped_exempt"))
	assert.Equal(t, 2, r.DataInt("skipped_non_matching"))
	assert.Equal(t, 0, r.DataInt("applied"))
	assert.Equal(t, true, r.Data["dry_run"])

	renames := r.DataList("renames")
	require.Len(t, renames, 2)
	first := renames[0].(map[string]interface{})
	assert.Equal(t, "kittynode.feat.sync.prd.base.v1.md", first["from"])
	assert.Equal(t, "kittynode.sync.prd.base.v1.md", first["to"])

	n.AssertFileExists("kittynode.feat.sync.prd.base.v1.md")
	n.AssertFileNotExists("kittynode.sync.prd.base.v1.md")
	assert.False(t, n.FileExists(journal.RollbackFile), "dry run must not write a journal")
}

func TestRefactorDryRunText(t *testing.T) {
	n := featureNotes(t)

	out, code := runCLI(t, "--dir", n.Path, "refactor", "--from", featFrom, "--to", featTo, "--dry-run", "--no-git")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Analyzing 5 files")
	assert.Contains(t, out, "Matched: 2 files")
	assert.Contains(t, out, "Skipped: 1 file (exempt)")
	assert.Contains(t, out, "Dry run (no changes made)")
	assert.Contains(t, out, "kittynode.sync.spec.base.v2.md")
}

func TestRefactorApplyAndRollback(t *testing.T) {
	n := featureNotes(t)

	r := n.RunCLI(runner(t), "refactor", "--from", featFrom, "--to", featTo, "--yes", "--no-git").MustSucceed(t)
	assert.Equal(t, 2, r.DataInt("applied"))

	n.AssertNames(
		"README.md",
		"daily.2026.01.05.md",
		"kittynode.sop.release.v1.md",
		"kittynode.sync.prd.base.v1.md",
		"kittynode.sync.spec.base.v2.md",
	)
	n.AssertFileContains("kittynode.sync.prd.base.v1.md", "# Sync")
	assert.True(t, n.FileExists(journal.RollbackFile))
	assert.False(t, n.FileExists(journal.RetryFile))

	r = n.RunCLI(runner(t), "refactor", "--rollback", "--no-git").MustSucceed(t)
	assert.Equal(t, "rollback", r.DataString("mode"))
	assert.Equal(t, 2, r.DataInt("applied"))

	n.AssertNames(
		"README.md",
		"daily.2026.01.05.md",
		"kittynode.feat.sync.prd.base.v1.md",
		"kittynode.feat.sync.spec.base.v2.md",
		"kittynode.sop.release.v1.md",
	)
	assert.False(t, n.FileExists(journal.RollbackFile), "rollback journal is removed after a full rollback")
}

func TestRefactorNoopRenamesAreSkipped(t *testing.T) {
	n := testutil.NewNotesDir(t).WithFiles("a.v1.md").Build()

	r := n.RunCLI(runner(t), "refactor", "--from", "{a}.v{N}", "--to", "{a}.v{N}", "--yes", "--no-git").MustSucceed(t)
	assert.Equal(t, 1, r.DataInt("matched"))
	assert.Empty(t, r.DataList("renames"))
	assert.False(t, n.FileExists(journal.RollbackFile))
}

func TestRefactorDuplicateTargets(t *testing.T) {
	n := testutil.NewNotesDir(t).WithFiles("x.y-z.md", "x-y.z.md").Build()

	r := n.RunCLI(runner(t), "refactor", "--from", "{a}.{b}", "--to", "{a}-{b}", "--yes", "--no-git").
		MustFail(t, ErrDuplicateTarget)
	r.AssertExitCode(t, exitConflict)
	assert.Contains(t, r.Error.Message, "x-y-z.md would be created by")

	n.AssertNames("x-y.z.md", "x.y-z.md")
}

func TestRefactorExistingTarget(t *testing.T) {
	build := func(t *testing.T) *testutil.NotesDir {
		return testutil.NewNotesDir(t).
			WithFile("a.v1.md", "new").
			WithFile("a.version1.md", "old").
			Build()
	}

	t.Run("conflict without force", func(t *testing.T) {
		n := build(t)
		r := n.RunCLI(runner(t), "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}", "--yes", "--no-git").
			MustFail(t, ErrTargetExists)
		r.AssertExitCode(t, exitConflict)
		assert.Contains(t, r.Error.Suggestion, "--force")
		n.AssertFileContains("a.version1.md", "old")
	})

	t.Run("force overwrites", func(t *testing.T) {
		n := build(t)
		n.RunCLI(runner(t), "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}", "--yes", "--no-git", "--force").
			MustSucceed(t)
		n.AssertNames("a.version1.md")
		n.AssertFileContains("a.version1.md", "new")
	})
}

func TestRefactorPatternErrors(t *testing.T) {
	n := testutil.NewNotesDir(t).WithFiles("a.v1.md").Build()

	tests := []struct {
		name     string
		from, to string
		code     string
		exit     int
	}{
		{"unclosed brace", "{a.v{N}", "{a}.x", ErrInvalidPattern, exitInvalidInput},
		{"empty placeholder", "{}.v{N}", "{a}", ErrInvalidPattern, exitInvalidInput},
		{"placeholder mismatch", "{a}.v{N}", "{b}.v{N}", ErrPlaceholderMismatch, exitInvalidInput},
		{"no match", "{a}.feat.{b}", "{a}.{b}", ErrNoMatch, exitNoMatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := n.RunCLI(runner(t), "refactor", "--from", tt.from, "--to", tt.to, "--no-git").MustFail(t, tt.code)
			r.AssertExitCode(t, tt.exit)
		})
	}
}

func TestRefactorPatternErrorNamesPatternAsTyped(t *testing.T) {
	n := testutil.NewNotesDir(t).WithFiles("a.v1.md").Build()

	for _, from := range []string{"{a}.{a}.v{N}", "{a.v{N}"} {
		t.Run(from, func(t *testing.T) {
			r := n.RunCLI(runner(t), "refactor", "--from", from, "--to", "{a}.v{N}", "--no-git").
				MustFail(t, ErrInvalidPattern)
			details, ok := r.Error.Details.(map[string]interface{})
			require.True(t, ok, "details: %v", r.Error.Details)
			assert.Equal(t, from, details["pattern"])
		})
	}
}

func TestRefactorNoFiles(t *testing.T) {
	n := testutil.NewNotesDir(t).Build()
	r := n.RunCLI(runner(t), "refactor", "--from", "{a}", "--to", "{a}-x").MustFail(t, ErrNoFiles)
	r.AssertExitCode(t, exitNoMatch)
}

func TestRefactorRequiresPatternsWhenNonInteractive(t *testing.T) {
	n := featureNotes(t)
	r := n.RunCLI(runner(t), "refactor", "--from", featFrom).MustFail(t, ErrMissingArgument)
	r.AssertExitCode(t, exitInvalidInput)
}

func TestRefactorRequiresConfirmation(t *testing.T) {
	n := featureNotes(t)

	r := n.RunCLI(runner(t), "refactor", "--from", featFrom, "--to", featTo, "--no-git").
		MustFail(t, ErrConfirmationRequired)
	r.AssertExitCode(t, exitEnvironment)
	n.AssertFileExists("kittynode.feat.sync.prd.base.v1.md")
}

func TestRefactorConfirmDisabledInConfig(t *testing.T) {
	n := testutil.NewNotesDir(t).
		WithFiles("a.v1.md").
		WithConfig("[refactor]\nconfirm = false\ngit = \"never\"\n").
		Build()

	r := n.RunCLI(runner(t), "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}").MustSucceed(t)
	assert.Equal(t, "mv", r.DataString("backend"))
	n.AssertNames("a.version1.md")
}

func TestRefactorRecoveryWithoutJournal(t *testing.T) {
	n := featureNotes(t)

	r := n.RunCLI(runner(t), "refactor", "--retry", "--no-git").MustFail(t, ErrJournalNotFound)
	r.AssertExitCode(t, exitEnvironment)

	r = n.RunCLI(runner(t), "refactor", "--rollback", "--no-git").MustFail(t, ErrJournalNotFound)
	r.AssertExitCode(t, exitEnvironment)
}

func TestRefactorRejectsConflictingFlags(t *testing.T) {
	n := featureNotes(t)

	tests := [][]string{
		{"--retry", "--from", featFrom},
		{"--retry", "--rollback"},
		{"--rollback", "--dry-run"},
		{"--git", "--no-git", "--from", featFrom, "--to", featTo},
	}
	for _, args := range tests {
		_, code := runCLI(t, append([]string{"--dir", n.Path, "refactor"}, args...)...)
		assert.Equal(t, exitInvalidInput, code, "args %v", args)
	}
	n.AssertFileExists("kittynode.feat.sync.prd.base.v1.md")
}

func TestRefactorPartialFailureThenRetry(t *testing.T) {
	n := testutil.NewNotesDir(t).
		WithFile("a.v1.md", "a").
		WithFile("b.v1.md", "b").
		WithFile("c.v1.md", "c").
		Build()

	// A non-empty directory at b's target cannot be replaced, even with --force.
	blocker := filepath.Join(n.Path, "b.version1.md")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "inner"), 0755))

	r := n.RunCLI(runner(t), "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}", "--yes", "--no-git", "--force").
		MustFail(t, ErrRenameFailed)
	r.AssertExitCode(t, exitPartial)
	assert.Contains(t, r.Error.Suggestion, "--retry")

	details, ok := r.Error.Details.(map[string]interface{})
	require.True(t, ok, "details: %#v", r.Error.Details)
	failed := details["failed"].(map[string]interface{})
	assert.Equal(t, "b.v1.md", failed["from"])
	assert.Len(t, details["completed"], 1)
	assert.Len(t, details["remaining"], 2)

	assert.True(t, n.FileExists("a.version1.md"))
	assert.True(t, n.FileExists("b.v1.md"))
	assert.True(t, n.FileExists("c.v1.md"))
	assert.True(t, n.FileExists(journal.RetryFile))
	assert.True(t, n.FileExists(journal.RollbackFile))

	require.NoError(t, os.RemoveAll(blocker))

	r = n.RunCLI(runner(t), "refactor", "--retry", "--no-git").MustSucceed(t)
	assert.Equal(t, "retry", r.DataString("mode"))
	assert.Equal(t, 2, r.DataInt("applied"))

	n.AssertNames("a.version1.md", "b.version1.md", "c.version1.md")
	assert.False(t, n.FileExists(journal.RetryFile))
}

func TestRefactorRetryFailureKeepsJournal(t *testing.T) {
	n := testutil.NewNotesDir(t).WithFile("a.v1.md", "a").Build()
	blocker := filepath.Join(n.Path, "a.version1.md")
	require.NoError(t, os.MkdirAll(filepath.Join(blocker, "inner"), 0755))

	n.RunCLI(runner(t), "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}", "--yes", "--no-git", "--force").
		MustFail(t, ErrRenameFailed)

	r := n.RunCLI(runner(t), "refactor", "--retry", "--no-git").MustFail(t, ErrRenameFailed)
	r.AssertExitCode(t, exitPartial)
	assert.True(t, n.FileExists(journal.RetryFile))
	assert.True(t, n.FileExists("a.v1.md"))
}

func TestRefactorInteractiveConfirm(t *testing.T) {
	t.Run("declined", func(t *testing.T) {
		n := testutil.NewNotesDir(t).WithFiles("a.v1.md").Build()
		out, code := runInteractive(t, "n\n", "--dir", n.Path, "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}", "--no-git")
		require.Equal(t, exitOK, code)
		assert.Contains(t, out, "Proceed with mv?")
		assert.Contains(t, out, "Aborted")
		n.AssertNames("a.v1.md")
	})

	t.Run("accepted", func(t *testing.T) {
		n := testutil.NewNotesDir(t).WithFiles("a.v1.md", "b.v1.md").Build()
		out, code := runInteractive(t, "y\n", "--dir", n.Path, "refactor", "--from", "{a}.v{N}", "--to", "{a}.version{N}", "--no-git")
		require.Equal(t, exitOK, code)
		assert.Contains(t, out, "Renaming 2 files...")
		assert.Contains(t, out, "Done. 2 files renamed.")
		n.AssertNames("a.version1.md", "b.version1.md")
	})
}

func TestRefactorPromptsForPatterns(t *testing.T) {
	n := testutil.NewNotesDir(t).WithFiles("kittynode.feat.sync.prd.base.v1.md").Build()

	// Empty source answer falls back to the canonical feature pattern.
	input := "\n{repo}.{feature}.{type}.{variant}.v{N}\ny\n"
	out, code := runInteractive(t, input, "--dir", n.Path, "refactor", "--no-git")
	require.Equal(t, exitOK, code, out)
	assert.Contains(t, out, "Enter source pattern")
	n.AssertNames("kittynode.sync.prd.base.v1.md")
}

func TestRefactorRecoveryRejectsDamagedJournal(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		mode    string
	}{
		{"empty retry journal object", journal.RetryFile, `{}`, "--retry"},
		{"rollback entry without target", journal.RollbackFile, `{"renames": [{"from": "a.version1.md"}]}`, "--rollback"},
		{"retry entry outside directory", journal.RetryFile, `{"renames": [{"from": "a.v1.md", "to": "../a.v1.md"}]}`, "--retry"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := testutil.NewNotesDir(t).WithFiles("a.v1.md").WithFile(tt.file, tt.content).Build()

			r := n.RunCLI(runner(t), "refactor", tt.mode, "--no-git").MustFail(t, ErrJournalInvalid)
			r.AssertExitCode(t, exitEnvironment)

			n.AssertNames("a.v1.md")
			assert.Equal(t, tt.content, n.ReadFile(tt.file), "a damaged journal is left for inspection")
		})
	}
}
