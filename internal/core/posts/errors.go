package posts

import (
	"errors"
	"fmt"
)

// Sentinel errors for common post operations
var (
	// ErrPostNotFound is returned when a post is absent or not visible to the caller.
	// Invisible posts are reported as missing so private accounts are not confirmed.
	ErrPostNotFound = errors.New("post not found")

	// ErrAuthorNotFound is returned when listing posts of an author the viewer cannot see
	ErrAuthorNotFound = errors.New("author not found")

	// ErrNotAuthor is returned when a caller acts on a post they did not write
	ErrNotAuthor = errors.New("only the author can modify this post")

	// ErrParentPending is returned when replying to a post still waiting for its media
	ErrParentPending = errors.New("cannot comment on a pending post")

	// ErrParentNotVisible is returned when replying to a private author the caller does not follow
	ErrParentNotVisible = errors.New("must follow the author to comment on this post")

	// ErrInvalidCursor is returned when a before/after cursor does not reference a post
	ErrInvalidCursor = errors.New("invalid pagination cursor")
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

// UploadTargetsError is returned when the post row was written but the storage
// collaborator could not issue upload targets. The post stays PENDING and the
// caller can request targets again for PostID.
type UploadTargetsError struct {
	Err    error
	PostID string
}

func (e *UploadTargetsError) Error() string {
	return fmt.Sprintf("post %s created but upload targets unavailable: %v", e.PostID, e.Err)
}

func (e *UploadTargetsError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if error means the post or author cannot be seen by the caller
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPostNotFound) || errors.Is(err, ErrAuthorNotFound)
}

// IsConflict checks if error is due to the current state of the post
func IsConflict(err error) bool {
	return errors.Is(err, ErrParentPending)
}

// IsForbidden checks if error is an authorship or follow requirement failure
func IsForbidden(err error) bool {
	return errors.Is(err, ErrNotAuthor) || errors.Is(err, ErrParentNotVisible)
}
