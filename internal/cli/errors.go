package cli

// Error codes for structured error responses.
// These codes are stable and can be relied upon by agents.
const (
	// Pattern errors
	ErrInvalidPattern      = "INVALID_PATTERN"
	ErrPlaceholderMismatch = "PLACEHOLDER_MISMATCH"

	// Conflict errors
	ErrDuplicateTarget = "DUPLICATE_TARGET"
	ErrTargetExists    = "TARGET_EXISTS"

	// Execution and recovery errors
	ErrRenameFailed       = "RENAME_FAILED"
	ErrJournalNotFound    = "JOURNAL_NOT_FOUND"
	ErrJournalInvalid     = "JOURNAL_INVALID"
	ErrBackendUnavailable = "BACKEND_UNAVAILABLE"

	// Directory errors
	ErrDirNotFound = "DIR_NOT_FOUND"
	ErrNoMatch     = "NO_MATCH"
	ErrNoFiles     = "NO_FILES"

	// Filename errors
	ErrInvalidFilename = "INVALID_FILENAME"
	ErrExemptFilename  = "EXEMPT_FILENAME"

	// File errors
	ErrFileNotFound   = "FILE_NOT_FOUND"
	ErrFileExists     = "FILE_EXISTS"
	ErrFileReadError  = "FILE_READ_ERROR"
	ErrFileWriteError = "FILE_WRITE_ERROR"

	// Input errors
	ErrInvalidInput         = "INVALID_INPUT"
	ErrMissingArgument      = "MISSING_ARGUMENT"
	ErrConfirmationRequired = "CONFIRMATION_REQUIRED"
	ErrConfigInvalid        = "CONFIG_INVALID"

	// General errors
	ErrInternal = "INTERNAL_ERROR"
)

// Warning codes for non-fatal issues.
const (
	WarnJournalWrite = "JOURNAL_WRITE_FAILED"
	WarnTitleRead    = "TITLE_READ_FAILED"
)
