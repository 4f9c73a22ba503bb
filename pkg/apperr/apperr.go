// Package apperr defines the application's error taxonomy.
//
// Handlers never inspect raw driver errors; repositories and services
// translate failures into one of these types, and pkg/response maps each
// type onto the right HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions that need no extra payload.
var (
	ErrNotFound        = errors.New("resource not found")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// ValidationError carries field-level messages for malformed input.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed (%d field(s))", len(e.Fields))
}

// NewValidation builds a ValidationError with a single field message.
func NewValidation(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

// InvalidTransitionError reports a status edge that is not permitted from
// the order's current persisted status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %q to %q", e.From, e.To)
}

// PersistenceError wraps an underlying store failure. Callers may retry.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError unless it is nil or already
// one of the domain error types.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		ve *ValidationError
		te *InvalidTransitionError
	)
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrUnauthenticated) ||
		errors.Is(err, ErrForbidden) || errors.As(err, &ve) || errors.As(err, &te) {
		return err
	}

	return &PersistenceError{Op: op, Err: err}
}
