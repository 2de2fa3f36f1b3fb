package core

import (
	"errors"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := notFound("tab", "abc")

	expected := `tab "abc" not found`
	if err.Error() != expected {
		t.Errorf("NotFoundError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, ErrNotFound) {
		t.Error("errors.Is(err, ErrNotFound) should be true")
	}

	if errors.Is(err, ErrConflict) {
		t.Error("NotFoundError must not match ErrConflict")
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.ID != "abc" {
		t.Errorf("errors.As should expose the id, got %+v", nf)
	}
}

func TestInvariantViolationError(t *testing.T) {
	err := violation("delete workspace", "cannot delete the last workspace")

	expected := "delete workspace rejected: cannot delete the last workspace"
	if err.Error() != expected {
		t.Errorf("InvariantViolationError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, ErrInvariantViolation) {
		t.Error("errors.Is(err, ErrInvariantViolation) should be true")
	}
}

func TestConflictError(t *testing.T) {
	err := &ConflictError{Kind: "workspace", ID: "design"}

	expected := `workspace "design" already exists`
	if err.Error() != expected {
		t.Errorf("ConflictError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, ErrConflict) {
		t.Error("errors.Is(err, ErrConflict) should be true")
	}
}

func TestPersistenceError_Unwrap(t *testing.T) {
	inner := errors.New("disk full")
	err := &PersistenceError{Op: "save", Key: KeyTabs, Err: inner}

	expected := "save horizon-tabs: disk full"
	if err.Error() != expected {
		t.Errorf("PersistenceError.Error() = %q, want %q", err.Error(), expected)
	}

	if !errors.Is(err, inner) {
		t.Error("errors.Is should find the inner error")
	}
}
