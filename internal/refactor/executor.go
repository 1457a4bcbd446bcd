package refactor

import (
	"context"
	"errors"
	"io"
	"log/slog"
)

// MoveBackend physically renames one file.
type MoveBackend interface {
	Name() string
	Move(ctx context.Context, from, to string, force bool) error
}

// JournalKind names one of the two recovery journals.
type JournalKind string

const (
	JournalRollback JournalKind = "rollback"
	JournalRetry    JournalKind = "retry"
)

// JournalStore persists recovery journals. Load returns ErrJournalNotFound
// (possibly wrapped) when the journal does not exist.
type JournalStore interface {
	Load(kind JournalKind) ([]RenamePlan, error)
	Save(kind JournalKind, plans []RenamePlan) error
	Clear(kind JournalKind) error
}

// StepStatus is reported to a ProgressFunc after each attempted move.
type StepStatus string

const (
	StepOK     StepStatus = "ok"
	StepFailed StepStatus = "failed"
)

// ProgressFunc observes each attempted move. step is 1-based.
type ProgressFunc func(step, total int, plan RenamePlan, status StepStatus, err error)

// Result summarizes a fully applied batch.
type Result struct {
	Applied []RenamePlan
}

// Executor applies rename batches strictly in order and stops at the first failure.
type Executor struct {
	Backend MoveBackend
	Journal JournalStore
	Force   bool

	// Logger receives diagnostic records; nil discards them.
	Logger *slog.Logger

	// Progress, when set, is called after every attempted move.
	Progress ProgressFunc
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Execute applies plans and journals the outcome. On success the rollback
// journal holds the whole batch and the retry journal is removed. On failure
// the returned error is an *ExecutionError; the rollback journal holds the
// applied prefix and the retry journal holds the failed entry and the rest.
// A journal write failure is reported as an *EnvironmentError, joined with
// the *ExecutionError when both happen.
func (e *Executor) Execute(ctx context.Context, plans []RenamePlan) (*Result, error) {
	return e.run(ctx, plans, true)
}

func (e *Executor) run(ctx context.Context, plans []RenamePlan, journal bool) (*Result, error) {
	log := e.logger().With("backend", e.Backend.Name())
	total := len(plans)
	applied := make([]RenamePlan, 0, total)

	for i, p := range plans {
		err := e.Backend.Move(ctx, p.From, p.To, e.Force)
		if err != nil {
			log.Debug("rename failed", "step", i+1, "from", p.From, "to", p.To, "error", err)
			e.report(i+1, total, p, StepFailed, err)

			execErr := &ExecutionError{
				Completed: applied,
				Failed:    p,
				Cause:     err,
				Remaining: append([]RenamePlan(nil), plans[i:]...),
			}
			if journal {
				if jerr := e.save(JournalRollback, applied); jerr != nil {
					return nil, errors.Join(execErr, jerr)
				}
				if jerr := e.save(JournalRetry, execErr.Remaining); jerr != nil {
					return nil, errors.Join(execErr, jerr)
				}
			}
			return nil, execErr
		}
		log.Debug("renamed", "step", i+1, "from", p.From, "to", p.To)
		e.report(i+1, total, p, StepOK, nil)
		applied = append(applied, p)
	}

	result := &Result{Applied: applied}
	if journal {
		// Every entry has moved, so the retry journal is stale whatever
		// happens to the rollback save.
		if err := e.Journal.Clear(JournalRetry); err != nil {
			log.Debug("could not remove stale retry journal", "error", err)
		}
		if err := e.save(JournalRollback, applied); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (e *Executor) report(step, total int, p RenamePlan, status StepStatus, err error) {
	if e.Progress != nil {
		e.Progress(step, total, p, status, err)
	}
}

func (e *Executor) save(kind JournalKind, plans []RenamePlan) error {
	if err := e.Journal.Save(kind, plans); err != nil {
		return &EnvironmentError{Op: "write " + string(kind) + " journal", Err: err}
	}
	return nil
}
