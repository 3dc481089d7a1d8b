package cmctypes

import (
	"errors"
	"fmt"
)

// Error categories for command processing. Handlers wrap these with
// fmt.Errorf("...: %w", ...) so callers can branch with errors.Is.
var (
	// ErrParse marks malformed input (unbalanced quoting, bad splitting).
	ErrParse = errors.New("parse error")

	// ErrUnknownCommand marks input no router rule matched.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrValidation marks handler-level bad arguments.
	ErrValidation = errors.New("validation error")

	// ErrConflict marks state that changed since an undo record was
	// pushed, or a destination that exists unexpectedly.
	ErrConflict = errors.New("conflict")

	// ErrNotFound marks an absent alias, macro, or path.
	ErrNotFound = errors.New("not found")

	// ErrCancelled marks a declined confirmation or interrupted worker.
	ErrCancelled = errors.New("cancelled")
)

// ParseErrorf wraps ErrParse with a formatted message.
func ParseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

// ValidationErrorf wraps ErrValidation with a formatted message.
func ValidationErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// ConflictErrorf wraps ErrConflict with a formatted message.
func ConflictErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// NotFoundErrorf wraps ErrNotFound with a formatted message.
func NotFoundErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}
