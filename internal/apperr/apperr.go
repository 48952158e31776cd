// Package apperr defines the error taxonomy shared by services and handlers.
// Services return (or wrap) these sentinels; the HTTP layer maps them to
// status codes and a uniform JSON body.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated covers every authentication failure: missing, malformed,
	// forged, or expired token, unknown email, wrong password, and tokens for
	// accounts that no longer exist. Callers must not be able to tell these apart.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrForbidden means the caller is authenticated but does not own the resource.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound means the id is well-formed but no such entity exists.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness constraint (email or phone) was violated.
	ErrConflict = errors.New("already exists")

	// ErrValidation means the input is malformed. Wrap with Validationf to
	// carry a field-level message.
	ErrValidation = errors.New("validation failed")

	// ErrInternal is an unexpected infrastructure failure. The detailed cause
	// stays in server logs; clients see only a generic message.
	ErrInternal = errors.New("internal error")
)

// Validationf wraps ErrValidation with a formatted message, e.g.
// Validationf("invalid note id %q", id).
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// Conflictf wraps ErrConflict with a formatted message naming the duplicate field.
func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConflict, fmt.Sprintf(format, args...))
}

// Internal wraps err as ErrInternal, preserving the cause for server-side logs
// while the client-visible message stays generic.
func Internal(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrInternal, err)
}

// Is reports whether err matches the given sentinel, unwrapping as needed.
func Is(err, sentinel error) bool { return errors.Is(err, sentinel) }
