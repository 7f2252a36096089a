package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies ledger failures for callers and transport layers.
type ErrorKind string

const (
	// ErrKindValidation indicates malformed or missing input.
	ErrKindValidation ErrorKind = "validation"
	// ErrKindConflict indicates a uniqueness violation (duplicate batch code).
	ErrKindConflict ErrorKind = "conflict"
	// ErrKindAuthorization indicates the caller lacks the right to act.
	ErrKindAuthorization ErrorKind = "authorization"
	// ErrKindNotFound indicates the referenced batch id or code does not exist.
	ErrKindNotFound ErrorKind = "not_found"
	// ErrKindState indicates the action is invalid in the current lifecycle
	// state (inactive or expired batch).
	ErrKindState ErrorKind = "state"
)

// Error is the typed failure returned by every ledger operation. Operations
// either fully succeed or fail with exactly one kind and a human-readable
// reason; no partial state is ever left behind.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// NewValidationError creates a validation failure.
func NewValidationError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

// NewConflictError creates a uniqueness-violation failure.
func NewConflictError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

// NewAuthorizationError creates an authorization failure.
func NewAuthorizationError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindAuthorization, Message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError creates a missing-reference failure.
func NewNotFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

// NewStateError creates a lifecycle-state failure.
func NewStateError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindState, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind from an error chain. It returns the empty
// kind for nil or foreign errors.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether the error chain carries a ledger error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}
