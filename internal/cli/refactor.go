package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/axon/internal/config"
	"github.com/aidanlsb/axon/internal/journal"
	"github.com/aidanlsb/axon/internal/mover"
	"github.com/aidanlsb/axon/internal/naming"
	"github.com/aidanlsb/axon/internal/notes"
	"github.com/aidanlsb/axon/internal/refactor"
	"github.com/aidanlsb/axon/internal/ui"
)

const previewLimit = 3

var (
	refactorFrom     string
	refactorTo       string
	refactorDryRun   bool
	refactorYes      bool
	refactorGit      bool
	refactorNoGit    bool
	refactorForce    bool
	refactorRetry    bool
	refactorRollback bool
)

const recoverySuggestion = "To retry failed files: axon refactor --retry\nTo rollback successful renames: axon refactor --rollback"

var refactorCmd = &cobra.Command{
	Use:   "refactor",
	Short: "Rename documents from one filename template to another",
	Long: `Renames every markdown file matching the source template to the target template.

Templates use {placeholder} syntax; {N} matches a version number and every other
placeholder matches a lowercase slug. Both templates must use the same placeholders.
".md" is appended when missing.

Nothing is renamed when two files would get the same name or when a target
already exists (unless --force). A batch that fails part way stops at the first
failure and writes recovery journals for --retry and --rollback.

Examples:
  axon refactor --from "{repo}.feat.{feature}.{type}.{variant}.v{N}" \
                --to "{repo}.{feature}.{type}.{variant}.v{N}" --dry-run
  axon refactor --from "{a}.v{N}" --to "{a}.version{N}" --yes
  axon refactor --retry
  axon refactor --rollback`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if refactorRetry || refactorRollback {
			return runRecovery(ctx, getDir())
		}
		return runRefactor(ctx, getDir())
	},
}

// RefactorResult is the JSON payload of a refactor run.
type RefactorResult struct {
	Backend     string                `json:"backend,omitempty"`
	Analyzed    int                   `json:"analyzed"`
	Matched     int                   `json:"matched"`
	Exempt      int                   `json:"skipped_exempt"`
	NonMatching int                   `json:"skipped_non_matching"`
	Renames     []refactor.RenamePlan `json:"renames"`
	Applied     int                   `json:"applied"`
	DryRun      bool                  `json:"dry_run"`
}

// RecoveryResult is the JSON payload of --retry and --rollback.
type RecoveryResult struct {
	Mode    string                `json:"mode"`
	Backend string                `json:"backend"`
	Renames []refactor.RenamePlan `json:"renames"`
	Applied int                   `json:"applied"`
}

func runRefactor(ctx context.Context, dir string) error {
	from, to, err := refactorPatterns()
	if err != nil {
		return err
	}

	source, err := refactor.Compile(from)
	if err != nil {
		return refactorError(fmt.Errorf("invalid source pattern %q: %w", from, err))
	}
	target, err := refactor.Compile(to)
	if err != nil {
		return refactorError(fmt.Errorf("invalid target pattern %q: %w", to, err))
	}
	if err := refactor.CheckPlaceholders(source, target); err != nil {
		return refactorError(err)
	}

	files, err := notes.ListMarkdown(dir)
	if err != nil {
		return handleError(ErrFileReadError, exitEnvironment, err, "")
	}
	if len(files) == 0 {
		return handleErrorMsg(ErrNoFiles, exitNoMatch,
			fmt.Sprintf("no markdown files found in %s", dir),
			"Are you in the notes directory? Use --dir to point elsewhere.")
	}

	var candidates []string
	exempt := 0
	for _, name := range files {
		if naming.ExemptReason(name) != "" {
			exempt++
			continue
		}
		candidates = append(candidates, name)
	}

	planner := &refactor.Planner{
		Exists: func(name string) bool { return notes.Exists(dir, name) },
		Force:  refactorForce,
	}
	plans, err := planner.Plan(candidates, source, target)
	if err != nil {
		return refactorError(err)
	}
	logger.Debug("planned batch", "source", source.String(), "target", target.String(), "matched", len(plans))

	if len(plans) == 0 {
		return noMatchError(from, candidates)
	}

	pending := refactor.Pending(plans)
	result := RefactorResult{
		Analyzed:    len(files),
		Matched:     len(plans),
		Exempt:      exempt,
		NonMatching: len(candidates) - len(plans),
		Renames:     pending,
		DryRun:      refactorDryRun,
	}

	if !isJSONOutput() {
		printAnalysis(result)
	}

	if len(pending) == 0 {
		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: 0})
			return nil
		}
		fmt.Fprintln(stdout, "\nNo changes to apply.")
		return nil
	}

	if !isJSONOutput() {
		fmt.Fprintln(stdout, "\nPreview:")
		fmt.Fprintln(stdout)
		printRenames(pending, previewLimit)
	}

	backend, err := resolveBackend(ctx, dir)
	if err != nil {
		return refactorError(err)
	}
	result.Backend = backend.Name()

	if refactorDryRun {
		if isJSONOutput() {
			outputSuccess(result, &Meta{Count: len(pending)})
			return nil
		}
		fmt.Fprintln(stdout, "\nDry run (no changes made):")
		fmt.Fprintln(stdout)
		printRenames(pending, 0)
		return nil
	}

	if !refactorYes && getConfig().ConfirmRenames() {
		if !shouldPromptForConfirm() {
			return handleErrorMsg(ErrConfirmationRequired, exitEnvironment,
				"confirmation required before renaming",
				"Rerun with --yes to rename without prompting")
		}
		if !promptForConfirm(fmt.Sprintf("\nProceed with %s?", backend.Name())) {
			fmt.Fprintln(stdout, "Aborted. No files were renamed.")
			return nil
		}
	}

	res, err := newExecutor(backend, dir).Execute(ctx, pending)
	if err != nil {
		var envErr *refactor.EnvironmentError
		if res != nil && errors.As(err, &envErr) {
			// Every rename was applied; only the journal could not be written.
			result.Applied = len(res.Applied)
			return journalWarning(result, err)
		}
		return refactorError(err)
	}
	result.Applied = len(res.Applied)

	if isJSONOutput() {
		outputSuccess(result, &Meta{Count: result.Applied})
		return nil
	}
	fmt.Fprintln(stdout, ui.Successf("Done. %d %s renamed.", result.Applied, ui.Pluralize(result.Applied, "file", "files")))
	return nil
}

func runRecovery(ctx context.Context, dir string) error {
	mode := "retry"
	if refactorRollback {
		mode = "rollback"
	}

	backend, err := resolveBackend(ctx, dir)
	if err != nil {
		return refactorError(err)
	}
	exec := newExecutor(backend, dir)

	var res *refactor.Result
	if refactorRollback {
		res, err = exec.Rollback(ctx)
	} else {
		res, err = exec.Retry(ctx)
	}
	if err != nil {
		var envErr *refactor.EnvironmentError
		if res != nil && errors.As(err, &envErr) {
			return journalWarning(RecoveryResult{Mode: mode, Backend: backend.Name(), Renames: res.Applied, Applied: len(res.Applied)}, err)
		}
		if refactorRollback {
			var execErr *refactor.ExecutionError
			if errors.As(err, &execErr) {
				return handleErrorWithDetails(ErrRenameFailed, exitPartial, err,
					"The rollback journal was kept. Fix the problem and run axon refactor --rollback again.",
					executionDetails(execErr))
			}
		}
		return refactorError(err)
	}

	out := RecoveryResult{Mode: mode, Backend: backend.Name(), Renames: res.Applied, Applied: len(res.Applied)}
	if isJSONOutput() {
		outputSuccess(out, &Meta{Count: out.Applied})
		return nil
	}
	switch {
	case out.Applied == 0:
		fmt.Fprintf(stdout, "Nothing to %s.\n", mode)
	case refactorRollback:
		fmt.Fprintln(stdout, ui.Successf("Rolled back %d %s.", out.Applied, ui.Pluralize(out.Applied, "rename", "renames")))
	default:
		fmt.Fprintln(stdout, ui.Successf("Done. %d %s renamed.", out.Applied, ui.Pluralize(out.Applied, "file", "files")))
	}
	return nil
}

func refactorPatterns() (from, to string, err error) {
	from, to = strings.TrimSpace(refactorFrom), strings.TrimSpace(refactorTo)
	if from != "" && to != "" {
		return from, to, nil
	}
	if !shouldPromptForConfirm() {
		return "", "", handleErrorMsg(ErrMissingArgument, exitInvalidInput,
			"--from and --to are required when not running interactively", "")
	}
	if from == "" {
		from = promptForValue("Enter source pattern (or press Enter for current):", naming.ShortPattern)
	}
	if to == "" {
		to = promptForValue("Enter target pattern:", "")
	}
	if strings.TrimSpace(to) == "" {
		return "", "", handleErrorMsg(ErrMissingArgument, exitInvalidInput, "target pattern is required", "")
	}
	return from, to, nil
}

func resolveBackend(ctx context.Context, dir string) (refactor.MoveBackend, error) {
	useGit, noGit := refactorGit, refactorNoGit
	if !useGit && !noGit {
		mode, _ := getConfig().GitMode()
		switch mode {
		case config.GitAlways:
			useGit = true
		case config.GitNever:
			noGit = true
		}
	}
	backend, err := mover.Resolve(ctx, mover.Options{UseGit: useGit, NoGit: noGit, Dir: dir})
	if err != nil {
		return nil, err
	}
	logger.Debug("selected rename backend", "backend", backend.Name())
	return backend, nil
}

func newExecutor(backend refactor.MoveBackend, dir string) *refactor.Executor {
	exec := &refactor.Executor{
		Backend: backend,
		Journal: journal.New(dir),
		Force:   refactorForce,
		Logger:  logger,
	}
	if !isJSONOutput() {
		exec.Progress = func(step, total int, p refactor.RenamePlan, status refactor.StepStatus, err error) {
			if step == 1 {
				fmt.Fprintf(stdout, "\nRenaming %d %s...\n", total, ui.Pluralize(total, "file", "files"))
			}
			fmt.Fprintln(stdout, ui.Step(step, total, status == refactor.StepOK, p.From))
			if err != nil {
				fmt.Fprintf(stdout, "         %v\n", err)
			}
		}
	}
	return exec
}

func printAnalysis(r RefactorResult) {
	fmt.Fprintf(stdout, "Analyzing %d files...\n\n", r.Analyzed)
	fmt.Fprintf(stdout, "Matched: %d %s\n", r.Matched, ui.Pluralize(r.Matched, "file", "files"))
	if r.Exempt > 0 {
		fmt.Fprintf(stdout, "Skipped: %d %s (exempt)\n", r.Exempt, ui.Pluralize(r.Exempt, "file", "files"))
	}
	if r.NonMatching > 0 {
		fmt.Fprintf(stdout, "Skipped: %d %s (non-matching)\n", r.NonMatching, ui.Pluralize(r.NonMatching, "file", "files"))
	}
}

// printRenames prints up to limit renames; limit 0 prints all of them.
func printRenames(plans []refactor.RenamePlan, limit int) {
	shown := plans
	if limit > 0 && len(plans) > limit {
		shown = plans[:limit]
	}
	for _, p := range shown {
		fmt.Fprintln(stdout, ui.Rename(p.From, p.To))
		fmt.Fprintln(stdout)
	}
	if len(shown) < len(plans) {
		fmt.Fprintln(stdout, ui.Hint(fmt.Sprintf("  ... and %d more", len(plans)-len(shown))))
	}
}

func noMatchError(from string, candidates []string) error {
	valid := 0
	for _, name := range candidates {
		if naming.IsValid(name) {
			valid++
		}
	}
	suggestion := ""
	if valid > 0 {
		suggestion = fmt.Sprintf("Found %d valid files with pattern: %s\nDid you mean to use the current pattern?", valid, naming.ShortPattern)
	}
	return handleErrorMsg(ErrNoMatch, exitNoMatch, fmt.Sprintf("no files match the pattern %q", from), suggestion)
}

// journalWarning reports a batch that was fully applied but whose journal
// could not be updated.
func journalWarning(data interface{}, err error) error {
	if isJSONOutput() {
		outputSuccessWithWarnings(data, []Warning{{Code: WarnJournalWrite, Message: err.Error()}}, nil)
		return silentExit(exitEnvironment)
	}
	fmt.Fprintln(stdout, ui.Warningf("Renames applied, but %v", err))
	return silentExit(exitEnvironment)
}

// refactorError maps the refactor error taxonomy to codes and exit statuses.
func refactorError(err error) error {
	var (
		syntaxErr      *refactor.SyntaxError
		consistencyErr *refactor.ConsistencyError
		conflictErr    *refactor.ConflictError
		execErr        *refactor.ExecutionError
		envErr         *refactor.EnvironmentError
	)

	switch {
	case errors.As(err, &execErr):
		return handleErrorWithDetails(ErrRenameFailed, exitPartial, err, recoverySuggestion, executionDetails(execErr))

	case errors.As(err, &conflictErr):
		details := map[string]interface{}{"kind": conflictErr.Kind}
		if conflictErr.Kind == refactor.ConflictTargetExists {
			details["existing"] = conflictErr.Existing
			return handleErrorWithDetails(ErrTargetExists, exitConflict, err,
				"Use --force to overwrite existing files (dangerous).", details)
		}
		details["duplicates"] = conflictErr.Duplicates
		return handleErrorWithDetails(ErrDuplicateTarget, exitConflict, err, "", details)

	case errors.As(err, &consistencyErr):
		return handleErrorWithDetails(ErrPlaceholderMismatch, exitInvalidInput, err,
			"Both patterns must use the same placeholders.",
			map[string]interface{}{
				"source":            consistencyErr.Source,
				"target":            consistencyErr.Target,
				"missing_in_target": consistencyErr.MissingInTarget,
				"missing_in_source": consistencyErr.MissingInSource,
			})

	case errors.As(err, &syntaxErr):
		return handleErrorWithDetails(ErrInvalidPattern, exitInvalidInput, err,
			"Patterns must use {placeholder} syntax", map[string]interface{}{
				"pattern": syntaxErr.Pattern,
				"reason":  syntaxErr.Reason,
			})

	case errors.As(err, &envErr):
		code := ErrBackendUnavailable
		suggestion := ""
		switch {
		case errors.Is(err, refactor.ErrJournalNotFound):
			code = ErrJournalNotFound
		case strings.HasPrefix(envErr.Op, "read "):
			code = ErrJournalInvalid
		case strings.HasPrefix(envErr.Op, "write "), strings.HasPrefix(envErr.Op, "remove "):
			code = ErrFileWriteError
		default:
			suggestion = "Use --no-git to rename with regular mv, or initialize a git repo first."
		}
		return handleError(code, exitEnvironment, err, suggestion)
	}

	return handleError(ErrInternal, exitEnvironment, err, "")
}

func executionDetails(e *refactor.ExecutionError) map[string]interface{} {
	return map[string]interface{}{
		"completed": e.Completed,
		"failed": map[string]string{
			"from":  e.Failed.From,
			"to":    e.Failed.To,
			"error": fmt.Sprint(e.Cause),
		},
		"remaining": e.Remaining,
	}
}

func init() {
	refactorCmd.Flags().StringVar(&refactorFrom, "from", "", "Source pattern")
	refactorCmd.Flags().StringVar(&refactorTo, "to", "", "Target pattern")
	refactorCmd.Flags().BoolVar(&refactorDryRun, "dry-run", false, "Show what would be renamed and exit")
	refactorCmd.Flags().BoolVarP(&refactorYes, "yes", "y", false, "Skip confirmation prompt")
	refactorCmd.Flags().BoolVar(&refactorGit, "git", false, "Use git mv for renames")
	refactorCmd.Flags().BoolVar(&refactorNoGit, "no-git", false, "Use mv for renames even in a git repository")
	refactorCmd.Flags().BoolVar(&refactorForce, "force", false, "Overwrite existing files")
	refactorCmd.Flags().BoolVar(&refactorRetry, "retry", false, "Retry previously failed renames")
	refactorCmd.Flags().BoolVar(&refactorRollback, "rollback", false, "Undo the last refactor")

	refactorCmd.MarkFlagsMutuallyExclusive("git", "no-git")
	refactorCmd.MarkFlagsMutuallyExclusive("retry", "rollback")
	for _, recovery := range []string{"retry", "rollback"} {
		refactorCmd.MarkFlagsMutuallyExclusive(recovery, "from")
		refactorCmd.MarkFlagsMutuallyExclusive(recovery, "to")
		refactorCmd.MarkFlagsMutuallyExclusive(recovery, "dry-run")
	}
	rootCmd.AddCommand(refactorCmd)
}
