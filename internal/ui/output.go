package ui

import "fmt"

// Unicode symbols for status indicators
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolArrow   = "→"
)

// Success returns a success message with checkmark symbol
func Success(msg string) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, msg)
}

// Successf returns a formatted success message with checkmark symbol
func Successf(format string, args ...interface{}) string {
	return Success(fmt.Sprintf(format, args...))
}

// Error returns an error message with X symbol
func Error(msg string) string {
	return fmt.Sprintf("%s %s", SymbolError, msg)
}

// Warning returns a warning message with warning symbol
func Warning(msg string) string {
	return fmt.Sprintf("%s %s", SymbolWarning, msg)
}

// Warningf returns a formatted warning message with warning symbol
func Warningf(format string, args ...interface{}) string {
	return Warning(fmt.Sprintf(format, args...))
}

// Header returns a styled section header
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath returns an accent-styled filename
func FilePath(path string) string {
	return Accent.Render(path)
}

// Hint returns muted hint text
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Rename formats one rename as two lines, the destination indented under the source.
func Rename(from, to string) string {
	return fmt.Sprintf("  %s\n    %s %s", from, Muted.Render(SymbolArrow), FilePath(to))
}

// Step formats a progress line such as "[2/5] ✓ name".
func Step(step, total int, ok bool, name string) string {
	symbol := SymbolSuccess
	if !ok {
		symbol = SymbolError
	}
	return fmt.Sprintf("  %s %s %s", Muted.Render(fmt.Sprintf("[%d/%d]", step, total)), symbol, name)
}

// Count returns a count badge (e.g., "(3 files)")
func Count(n int, singular, plural string) string {
	return fmt.Sprintf("(%d %s)", n, Pluralize(n, singular, plural))
}

// Pluralize returns singular or plural form based on count
func Pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
