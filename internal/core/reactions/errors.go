package reactions

import "errors"

var (
	// ErrAlreadyReacted is returned when the user already holds this reaction type on the post
	ErrAlreadyReacted = errors.New("reaction already exists")

	// ErrReactionNotFound is returned when removing a reaction the user does not hold
	ErrReactionNotFound = errors.New("reaction not found")

	// ErrInvalidType is returned for reaction types other than LIKE and RETWEET
	ErrInvalidType = errors.New("reaction type must be LIKE or RETWEET")

	// ErrUserNotFound is returned when listing reactions of an account the viewer cannot see
	ErrUserNotFound = errors.New("user not found")
)
