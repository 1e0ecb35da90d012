package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur while running a tournament.
var (
	// ErrInvalidConfiguration indicates that tournament configuration is
	// invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrProtocolViolation indicates that the tournament protocol was driven
	// out of order, for example selecting finalists twice.
	ErrProtocolViolation = errors.New("protocol violation")

	// ErrFinalScoreAlreadySet indicates that a contestant's final score was
	// combined more than once.
	ErrFinalScoreAlreadySet = errors.New("final score already set")

	// ErrDuplicateContestant indicates that two contestants share an ID.
	ErrDuplicateContestant = errors.New("duplicate contestant")

	// ErrEmptyValue indicates that a required value is empty or nil.
	ErrEmptyValue = errors.New("empty value")
)

// ProtocolError represents an operation that was invoked in a stage where the
// tournament protocol does not allow it. These are programmer errors in the
// driving code and are not recoverable at runtime.
type ProtocolError struct {
	// Stage is the stage the session was in when the operation was attempted.
	Stage Stage

	// Operation names the session operation that was rejected.
	Operation string

	// Err is the underlying error that caused the operation to fail.
	Err error
}

// Error implements the error interface for ProtocolError.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error: operation=%s, stage=%s, err=%v", e.Operation, e.Stage, e.Err)
}

// Unwrap returns the underlying error, supporting Go 1.13+ error unwrapping.
func (e *ProtocolError) Unwrap() error { return e.Err }

// NewProtocolError creates a ProtocolError wrapping ErrProtocolViolation with
// the given detail.
func NewProtocolError(stage Stage, operation, detail string) *ProtocolError {
	return &ProtocolError{
		Stage:     stage,
		Operation: operation,
		Err:       fmt.Errorf("%w: %s", ErrProtocolViolation, detail),
	}
}

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// Unwrap lets callers match every validation failure against
// ErrInvalidConfiguration.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfiguration }

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
