package cli

import (
	"errors"
)

// Process exit codes.
const (
	exitOK           = 0
	exitNoMatch      = 1 // nothing to do, or validation failed
	exitInvalidInput = 2
	exitConflict     = 3
	exitPartial      = 4 // a batch stopped part way; journals were written
	exitEnvironment  = 5
)

// exitError carries the exit code for a failed command. reported is set
// once the failure has already been written as a JSON envelope.
type exitError struct {
	code       int
	err        error
	suggestion string
	reported   bool
}

func (e *exitError) Error() string {
	if e.err == nil {
		return ""
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

// silentExit fails with code without printing anything more.
func silentExit(code int) error {
	return &exitError{code: code, reported: true}
}

// ExitCode maps an error returned by Execute to a process exit code.
// Errors raised by cobra itself (unknown flags, bad arguments) are input errors.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return exitInvalidInput
}
