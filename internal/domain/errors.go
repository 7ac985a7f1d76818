package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
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
		return fmt.Sprintf("validation: %s — %s", e.Errors[0].Field, e.Errors[0].Message)
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

// InvalidTransitionError is returned when a workflow operation finds the
// draft in a status that does not permit the requested action. The message
// always names the draft's actual current status so the caller can see why
// the action was refused.
type InvalidTransitionError struct {
	DraftID  uuid.UUID
	Current  DraftStatus
	Action   AuditAction
	Required DraftStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.Required != "" {
		return fmt.Sprintf("draft %s: cannot %s while status is %s (must be %s first)",
			e.DraftID, e.Action, e.Current, e.Required)
	}
	return fmt.Sprintf("draft %s: cannot %s while status is %s", e.DraftID, e.Action, e.Current)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrConflict }

// NewInvalidTransitionError creates an InvalidTransitionError without a
// required-status hint.
func NewInvalidTransitionError(draftID uuid.UUID, current DraftStatus, action AuditAction) *InvalidTransitionError {
	return &InvalidTransitionError{DraftID: draftID, Current: current, Action: action}
}
