package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound matches every NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation matches every InvariantViolationError
	ErrInvariantViolation = errors.New("invariant violation")

	// ErrConflict matches every ConflictError
	ErrConflict = errors.New("conflict")
)

// NotFoundError indicates the target of an operation does not exist
type NotFoundError struct {
	Kind string // "tab", "workspace", "archived tab"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvariantViolationError indicates an operation was rejected because it
// would break a store invariant. No state was changed.
type InvariantViolationError struct {
	Op     string
	Reason string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("%s rejected: %s", e.Op, e.Reason)
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}

// ConflictError indicates an id is already taken
type ConflictError struct {
	Kind string
	ID   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Kind, e.ID)
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

// PersistenceError wraps a storage or serialization failure. The in-memory
// state stays authoritative when one occurs.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

func notFound(kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

func violation(op, reason string) error {
	return &InvariantViolationError{Op: op, Reason: reason}
}
