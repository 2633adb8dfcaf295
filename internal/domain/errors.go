package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for simple conditions without extra context.
var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrListingNotFound  = errors.New("listing not found")
	ErrDocumentNotFound = errors.New("document not found")

	// ErrVersionConflict is returned when a conditional write lost against a
	// concurrent writer of the same entity.
	ErrVersionConflict = errors.New("entity was modified concurrently")
)

// ForbiddenError is returned when the actor lacks the role or ownership an action requires.
type ForbiddenError struct {
	Action  Action
	ActorID string
	Reason  string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("actor %q may not %s: %s", e.ActorID, e.Action, e.Reason)
}

// TransitionError is returned when a state transition is not allowed.
type TransitionError struct {
	Entity  EntityKind
	Event   Event
	Current string
}

func (e *TransitionError) Error() string {
	current := e.Current
	if current == "" {
		current = "<none>"
	}
	return fmt.Sprintf("event %q is not valid for %s in state %q", e.Event, e.Entity, current)
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when a payload is missing or malformed.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError is returned when a uniqueness invariant would be violated.
type ConflictError struct {
	Entity EntityKind
	Key    string
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.Key, e.Reason)
}
