// Package errors provides typed error handling for ztimer-go's backends.
//
// The ztimer core (package ztimer) never returns an error: per spec.md §7,
// Arm/Disarm have no failure mode a caller could act on, so they don't have
// one in the API either. Errors belong to the layer below the core — the
// Backend implementations, which do real I/O and can fail for real reasons
// (a clock device that won't open, a tick duration that doesn't fit the
// hardware, a timerfd syscall that returns EINVAL). This package gives that
// layer one error type with enough structure to classify and test against,
// while still composing with errors.Is/errors.As.
package errors

import (
	"errors"
	"fmt"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrInvalidConfig indicates a backend was constructed with parameters
	// it cannot honor (e.g. a tick duration of zero).
	ErrInvalidConfig ErrorKind = iota
	// ErrUnsupported indicates the requested backend has no implementation
	// on the current platform.
	ErrUnsupported
	// ErrResource indicates a system resource (timerfd, clock device)
	// could not be acquired.
	ErrResource
	// ErrPermission indicates a permission error opening a clock resource.
	ErrPermission
	// ErrClosed indicates an operation on a backend that has already shut
	// down.
	ErrClosed
	// ErrInternal indicates an internal error that should not occur given
	// the backend's own invariants.
	ErrInternal
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidConfig:
		return "invalid config"
	case ErrUnsupported:
		return "unsupported"
	case ErrResource:
		return "resource error"
	case ErrPermission:
		return "permission denied"
	case ErrClosed:
		return "backend closed"
	case ErrInternal:
		return "internal error"
	default:
		return "unknown error"
	}
}

// BackendError represents an error raised by a ztimer.Backend implementation
// or by CLI/config code that constructs one.
type BackendError struct {
	// Op is the operation that failed (e.g., "New", "SetAlarm").
	Op string
	// Backend is the backend name, if applicable (e.g. "unixhr", "softclock").
	Backend string
	// Err is the underlying error.
	Err error
	// Kind is the error classification.
	Kind ErrorKind
	// Detail provides additional context about the error.
	Detail string
}

// Error returns the error message.
func (e *BackendError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var msg string
	if e.Backend != "" {
		msg = fmt.Sprintf("%s: ", e.Backend)
	}
	if e.Op != "" {
		msg += fmt.Sprintf("%s: ", e.Op)
	}
	if e.Detail != "" {
		msg += e.Detail
	} else {
		msg += e.Kind.String()
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

// Unwrap returns the underlying error.
func (e *BackendError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether the error matches the target.
// It matches if the target is a *BackendError with the same Kind; any other
// target is not matched here (errors.Is reaches the underlying error
// through Unwrap).
func (e *BackendError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	if t, ok := target.(*BackendError); ok {
		return e.Kind == t.Kind
	}
	return false
}

// New creates a new BackendError with the given kind.
func New(kind ErrorKind, op string, detail string) *BackendError {
	return &BackendError{
		Op:     op,
		Kind:   kind,
		Detail: detail,
	}
}

// Wrap wraps an error with operation context.
func Wrap(err error, kind ErrorKind, op string) *BackendError {
	return &BackendError{
		Op:   op,
		Err:  err,
		Kind: kind,
	}
}

// WrapWithBackend wraps an error with operation and backend name context.
func WrapWithBackend(err error, kind ErrorKind, op string, backend string) *BackendError {
	return &BackendError{
		Op:      op,
		Backend: backend,
		Err:     err,
		Kind:    kind,
	}
}

// WrapWithDetail wraps an error with additional detail.
func WrapWithDetail(err error, kind ErrorKind, op string, detail string) *BackendError {
	return &BackendError{
		Op:     op,
		Err:    err,
		Kind:   kind,
		Detail: detail,
	}
}

// IsKind checks if an error is of a specific kind.
func IsKind(err error, kind ErrorKind) bool {
	var berr *BackendError
	if errors.As(err, &berr) {
		return berr.Kind == kind
	}
	return false
}

// GetKind returns the error kind if the error is a BackendError.
func GetKind(err error) (ErrorKind, bool) {
	var berr *BackendError
	if errors.As(err, &berr) {
		return berr.Kind, true
	}
	return 0, false
}

// Re-export standard library functions for convenience.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
)
