package ports

import (
	"errors"
	"fmt"
)

// Common infrastructure errors that can occur during external collaborator
// interactions.
var (
	// ErrScoreUnavailable indicates that the score generator cannot produce a
	// score for a contestant and category.
	ErrScoreUnavailable = errors.New("score unavailable")

	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = errors.New("operation timed out")

	// ErrConfigNotFound indicates that required configuration is missing.
	ErrConfigNotFound = errors.New("configuration not found")

	// ErrPersistenceFailed indicates that a tournament record could not be
	// stored.
	ErrPersistenceFailed = errors.New("persistence failed")
)

// ScoreError represents a failed contestant turn. It identifies the round and
// contestant whose score could not be produced.
type ScoreError struct {
	// Category is the category being played.
	Category string

	// Slot is the 1-based position passed to the score generator.
	Slot int

	// ContestantID identifies the contestant whose turn failed.
	ContestantID string

	// Round is the 1-indexed round within its phase.
	Round int

	// Err is the underlying error returned by the score generator.
	Err error
}

// Error implements the error interface for ScoreError.
func (e *ScoreError) Error() string {
	return fmt.Sprintf("score error: round=%d, category=%s, contestant=%s, slot=%d, err=%v",
		e.Round, e.Category, e.ContestantID, e.Slot, e.Err)
}

// Unwrap returns the underlying error.
func (e *ScoreError) Unwrap() error { return e.Err }

// PersistenceError represents a failure to store a tournament record.
type PersistenceError struct {
	// TournamentID identifies the record that was not stored.
	TournamentID string

	// Err is the underlying store error.
	Err error
}

// Error implements the error interface for PersistenceError.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error: tournament=%s, err=%v", e.TournamentID, e.Err)
}

// Unwrap returns both the underlying error and ErrPersistenceFailed so that
// callers can match either.
func (e *PersistenceError) Unwrap() []error { return []error{ErrPersistenceFailed, e.Err} }

// NewPersistenceError creates a new PersistenceError with the given details.
func NewPersistenceError(tournamentID string, err error) *PersistenceError {
	return &PersistenceError{TournamentID: tournamentID, Err: err}
}

// ConfigError represents an error from configuration operations.
type ConfigError struct {
	// ConfigKey is the configuration key that was involved in the failed
	// operation.
	ConfigKey string

	// Err is the underlying error that caused the configuration operation
	// to fail.
	Err error
}

// Error implements the error interface for ConfigError.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: key=%s, err=%v", e.ConfigKey, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error { return e.Err }

// NewConfigError creates a new ConfigError with the given details.
func NewConfigError(key string, err error) *ConfigError {
	return &ConfigError{
		ConfigKey: key,
		Err:       err,
	}
}
