package refactor

import (
	"errors"
	"fmt"
	"strings"
)

// SyntaxReason identifies what is wrong with a template string.
type SyntaxReason string

const (
	ReasonNestedPlaceholder   SyntaxReason = "nested placeholder"
	ReasonUnclosedPlaceholder SyntaxReason = "unclosed placeholder"
	ReasonUnopenedPlaceholder SyntaxReason = "unopened placeholder"
	ReasonUnclosedBracket     SyntaxReason = "unclosed bracket"
	ReasonUnopenedBracket     SyntaxReason = "unopened bracket"
	ReasonEmptyPlaceholder    SyntaxReason = "empty placeholder"
	ReasonDuplicate           SyntaxReason = "duplicate placeholder"
)

// SyntaxError reports a malformed template string. Pattern is the template as
// the caller wrote it. Pos is a byte offset into it, or -1 when the reason has
// no position.
type SyntaxError struct {
	Pattern string
	Reason  SyntaxReason
	Pos     int
	Name    string
}

func (e *SyntaxError) Error() string {
	switch e.Reason {
	case ReasonDuplicate:
		return fmt.Sprintf("%s {%s}", e.Reason, e.Name)
	case ReasonUnopenedPlaceholder, ReasonUnclosedBracket, ReasonUnopenedBracket:
		return fmt.Sprintf("%s at position %d", e.Reason, e.Pos)
	default:
		return string(e.Reason)
	}
}

// ConsistencyError reports that the source and target patterns reference
// different placeholder sets.
type ConsistencyError struct {
	Source          []Placeholder
	Target          []Placeholder
	MissingInTarget []Placeholder
	MissingInSource []Placeholder
}

func (e *ConsistencyError) Error() string {
	var b strings.Builder
	b.WriteString("placeholder mismatch between patterns\n")
	fmt.Fprintf(&b, "  - Source has: %s\n", joinPlaceholders(e.Source))
	fmt.Fprintf(&b, "  - Target has: %s\n", joinPlaceholders(e.Target))
	if len(e.MissingInTarget) > 0 {
		fmt.Fprintf(&b, "  - Missing in target: %s\n", joinPlaceholders(e.MissingInTarget))
	}
	if len(e.MissingInSource) > 0 {
		fmt.Fprintf(&b, "  - Missing in source: %s\n", joinPlaceholders(e.MissingInSource))
	}
	b.WriteString("\nBoth patterns must use the same placeholders.")
	return b.String()
}

func joinPlaceholders(set []Placeholder) string {
	parts := make([]string, len(set))
	for i, p := range set {
		parts[i] = "{" + string(p) + "}"
	}
	return strings.Join(parts, ", ")
}

// ConflictKind distinguishes the two batch-level conflict checks.
type ConflictKind string

const (
	ConflictDuplicateTarget ConflictKind = "duplicate_target"
	ConflictTargetExists    ConflictKind = "target_exists"
)

// DuplicateTarget is one destination produced by more than one source.
type DuplicateTarget struct {
	Target  string   `json:"target"`
	Sources []string `json:"sources"`
}

// ConflictError reports every conflict found in a batch. Nothing has been
// renamed when it is returned.
type ConflictError struct {
	Kind       ConflictKind
	Duplicates []DuplicateTarget
	Existing   []RenamePlan
}

func (e *ConflictError) Error() string {
	var b strings.Builder
	switch e.Kind {
	case ConflictDuplicateTarget:
		b.WriteString("target pattern would create duplicate filenames\n\nConflicts:\n")
		for _, d := range e.Duplicates {
			fmt.Fprintf(&b, "  %s would be created by:\n", d.Target)
			for _, src := range d.Sources {
				fmt.Fprintf(&b, "    - %s\n", src)
			}
			b.WriteString("\n")
		}
	case ConflictTargetExists:
		b.WriteString("target filename already exists\n\n")
		for _, p := range e.Existing {
			fmt.Fprintf(&b, "  %s already exists\n  (source: %s)\n\n", p.To, p.From)
		}
	}
	b.WriteString("Aborting. No files were renamed.")
	return b.String()
}

// ExecutionError reports a batch that stopped at its first failed move.
// Completed entries were applied; Remaining starts with Failed and was not.
type ExecutionError struct {
	Completed []RenamePlan
	Failed    RenamePlan
	Cause     error
	Remaining []RenamePlan
}

func (e *ExecutionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "rename failed after %d successful operations\n\n", len(e.Completed))
	if len(e.Completed) > 0 {
		b.WriteString("Successfully renamed:\n")
		for _, p := range e.Completed {
			fmt.Fprintf(&b, "  - %s -> %s\n", p.From, p.To)
		}
		b.WriteString("\n")
	}
	b.WriteString("Failed:\n")
	fmt.Fprintf(&b, "  - %s: %v", e.Failed.From, e.Cause)
	if n := e.Untouched(); n > 0 {
		fmt.Fprintf(&b, "\n\nRemaining %d files were not processed.", n)
	}
	return b.String()
}

func (e *ExecutionError) Unwrap() error { return e.Cause }

// Untouched is the number of entries after the failed one.
func (e *ExecutionError) Untouched() int {
	if len(e.Remaining) == 0 {
		return 0
	}
	return len(e.Remaining) - 1
}

// EnvironmentError reports a sub-operation that could not start because of
// its surroundings: a missing journal, a corrupt journal, an unavailable backend.
type EnvironmentError struct {
	Op     string
	Detail string
	Err    error
}

func (e *EnvironmentError) Error() string {
	switch {
	case e.Detail != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Detail, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// ErrJournalNotFound is returned by a JournalStore when the requested journal does not exist.
var ErrJournalNotFound = errors.New("journal not found")
