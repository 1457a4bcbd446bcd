package refactor

import (
	"context"
	"errors"
)

// Retry replays the retry journal. The journal is removed only when every
// entry succeeds; a new failure replaces it with the new unattempted suffix.
// An empty journal is removed and reported as an empty result.
func (e *Executor) Retry(ctx context.Context) (*Result, error) {
	plans, err := e.load(JournalRetry)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		_ = e.Journal.Clear(JournalRetry)
		return &Result{}, nil
	}

	// A successful run clears the retry journal and records this batch for rollback.
	return e.run(ctx, plans, true)
}

// Rollback undoes the batch recorded in the rollback journal by applying its
// inverse in reverse order. The inverse batch is not journaled itself. The
// rollback journal is removed once the inverse batch fully succeeds; on
// failure it is left in place and the *ExecutionError describes the state.
func (e *Executor) Rollback(ctx context.Context) (*Result, error) {
	plans, err := e.load(JournalRollback)
	if err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		_ = e.Journal.Clear(JournalRollback)
		return &Result{}, nil
	}

	res, err := e.run(ctx, Invert(plans), false)
	if err != nil {
		return res, err
	}
	if err := e.Journal.Clear(JournalRollback); err != nil {
		return res, &EnvironmentError{Op: "remove rollback journal", Err: err}
	}
	return res, nil
}

func (e *Executor) load(kind JournalKind) ([]RenamePlan, error) {
	plans, err := e.Journal.Load(kind)
	if err == nil {
		return plans, nil
	}
	if errors.Is(err, ErrJournalNotFound) {
		return nil, &EnvironmentError{Op: "read " + string(kind) + " journal", Detail: "no " + string(kind) + " journal found", Err: err}
	}
	return nil, &EnvironmentError{Op: "read " + string(kind) + " journal", Err: err}
}
