package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	// ErrInvalidStateTransition is returned when an operation targets an entity
	// whose current status forbids it.
	ErrInvalidStateTransition = stderrors.New("invalid state transition")
	// ErrValidation is returned for out-of-range or malformed input.
	ErrValidation = stderrors.New("validation failed")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = stderrors.New("not found")
	// ErrStorageWrite is returned when the backend could not persist a document.
	ErrStorageWrite = stderrors.New("storage write failed")
)

// StateTransitionError describes a rejected operation on a goal or habit.
type StateTransitionError struct {
	Entity string
	ID     string
	Status string
	Op     string
}

func (e *StateTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s %s %s while %s", ErrInvalidStateTransition, e.Op, e.Entity, e.ID, e.Status)
}

func (e *StateTransitionError) Unwrap() error { return ErrInvalidStateTransition }

// ValidationError describes a rejected input value.
type ValidationError struct {
	Field  string
	Value  interface{}
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s (got %v)", ErrValidation, e.Field, e.Reason, e.Value)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError names the missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Invalid is shorthand for a ValidationError.
func Invalid(field string, value interface{}, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// NotFound is shorthand for a NotFoundError.
func NotFound(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// Transition is shorthand for a StateTransitionError.
func Transition(entity, id, status, op string) error {
	return &StateTransitionError{Entity: entity, ID: id, Status: status, Op: op}
}
