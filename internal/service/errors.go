package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/echologistics/carrier-intake/internal/validate"
)

// ErrNotFound is returned when a tracking ID resolves to no record.
var ErrNotFound = errors.New("agreement not found")

// ErrInvalidStatus is returned for a status value outside the fixed set.
var ErrInvalidStatus = errors.New("invalid status value")

// ValidationError carries field-scoped failures. It is returned before
// any side effect and is user-correctable.
type ValidationError struct {
	Fields []validate.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// FieldErrors returns the field-scoped failures.
func (e *ValidationError) FieldErrors() []validate.FieldError {
	return e.Fields
}

// PersistenceError means the store write failed; the whole submission
// fails and the caller may retry with the same draft.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save agreement: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
