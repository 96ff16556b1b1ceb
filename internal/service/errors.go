package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/RubachokBoss/worker-portal/internal/validation"
)

// Error kinds. Every *Error unwraps to exactly one of these.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStore        = errors.New("store failure")
	ErrUnavailable  = errors.New("store unavailable")
)

// Error carries a client-facing message next to its kind and, for store
// failures, the underlying driver error.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

// Cause is the driver error behind a store failure, if any.
func (e *Error) Cause() error {
	return e.Err
}

func invalid(err error) error {
	return &Error{Kind: ErrValidation, Message: clientMessage(err)}
}

func unauthorized(message string) error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func notFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func conflict(message string) error {
	return &Error{Kind: ErrConflict, Message: message}
}

// storeError wraps a failed statement. Callers that already hold a *Error
// (from inside WithConn) get it back unchanged.
func storeError(message string, err error) error {
	var se *Error
	if errors.As(err, &se) {
		return se
	}

	kind := ErrStore
	if isUnavailable(err) {
		kind = ErrUnavailable
	}

	return &Error{Kind: kind, Message: message, Err: err}
}

func isUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, sql.ErrConnDone) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

func clientMessage(err error) string {
	var fe *validation.FieldError
	if errors.As(err, &fe) {
		return fe.Message
	}
	return err.Error()
}
