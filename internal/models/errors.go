package models

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("permission denied")
	ErrConflict  = errors.New("already exists")
)

// ValidationError reports input that the engine refuses to accept.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Invalid builds a ValidationError.
func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Membership rules enforced by every store.
var (
	ErrMemberHasExpenses = &ValidationError{Message: "member has paid expenses in this group"}
	ErrLastAdmin         = &ValidationError{Message: "group must keep at least one admin"}
)
