package users

import (
	"errors"
	"fmt"
)

// Sentinel errors for common user operations
var (
	// ErrUserNotFound is returned when a user lookup finds no matching record
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when signing up with a username that belongs to another user
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when signing up with an email that belongs to another user
	ErrEmailTaken = errors.New("email already registered")
)

// ValidationError represents a validation error with field context
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error (%s): %s", e.Field, e.Message)
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) error {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// IsValidationError checks if error is a validation error
func IsValidationError(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}

// IsConflict reports whether err means the account identity is already in use
func IsConflict(err error) bool {
	return errors.Is(err, ErrUsernameTaken) || errors.Is(err, ErrEmailTaken)
}
