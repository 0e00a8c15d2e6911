package entities

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record looked up by id is absent.
var ErrNotFound = errors.New("not found")

// ValidationError reports user input that is insufficient for the chosen
// operation. It is raised before any network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// GenerationFailure wraps a failed or unusable response from a generative
// capability. The pipeline recovers from it with local fallbacks; it only
// surfaces when every fallback is exhausted.
type GenerationFailure struct {
	Stage string // "content" or "image"
	Err   error
}

func (e *GenerationFailure) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Stage, e.Err)
}

func (e *GenerationFailure) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a failed store write. Saves are best effort, but
// a failed write is surfaced to the caller rather than silently logged.
type PersistenceError struct {
	Op  string // "save", "delete", "load"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s of %q failed: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
