package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// StateError reports a lifecycle action attempted while the case file is in
// a status that does not allow it. It unwraps to ErrForbidden so the
// transport layer maps it to 403, and carries the status and action so the
// caller can render a meaningful message instead of a bare "forbidden".
type StateError struct {
	Status CaseStatus
	Action string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s a case file in status %s", e.Action, e.Status)
}

func (e *StateError) Unwrap() error { return ErrForbidden }

// NewStateError creates a StateError for the given status and action.
func NewStateError(status CaseStatus, action string) *StateError {
	return &StateError{Status: status, Action: action}
}
