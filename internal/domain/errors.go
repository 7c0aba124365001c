package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a referenced workspace, view, trash entry or
	// snapshot does not exist (or is not live where a live view is required)
	NotFoundError struct {
		Message string
	}

	// InvalidOperationError indicates the operation itself is not allowed in
	// the current state (cycle-creating move, create under trashed parent, ...)
	InvalidOperationError struct {
		Message string
	}

	// GoneError indicates the engine has been closed and can no longer serve
	GoneError struct {
		Message string
	}

	// InternalError indicates a broken invariant or storage corruption
	InternalError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}
)

// Error implementations
func (e *NotFoundError) Error() string         { return e.Message }
func (e *InvalidOperationError) Error() string { return e.Message }
func (e *GoneError) Error() string             { return e.Message }
func (e *InternalError) Error() string         { return e.Message }
func (e *UnauthorizedError) Error() string     { return e.Message }

// StatusCode implementations (HTTPError interface)
func (e *NotFoundError) StatusCode() int         { return http.StatusNotFound }
func (e *InvalidOperationError) StatusCode() int { return http.StatusBadRequest }
func (e *GoneError) StatusCode() int             { return http.StatusGone }
func (e *InternalError) StatusCode() int         { return http.StatusInternalServerError }
func (e *UnauthorizedError) StatusCode() int     { return http.StatusUnauthorized }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrGone             = errors.New("engine closed")
	ErrInternal         = errors.New("internal error")
	ErrUnauthorized     = errors.New("unauthorized")
)

// Is allows errors.Is() to match typed errors against their sentinels
func (e *NotFoundError) Is(target error) bool         { return target == ErrNotFound }
func (e *InvalidOperationError) Is(target error) bool { return target == ErrInvalidOperation }
func (e *GoneError) Is(target error) bool             { return target == ErrGone }
func (e *InternalError) Is(target error) bool         { return target == ErrInternal }
func (e *UnauthorizedError) Is(target error) bool     { return target == ErrUnauthorized }
