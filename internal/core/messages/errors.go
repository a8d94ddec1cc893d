package messages

import "errors"

var (
	// ErrNotFriends is returned when sender and receiver do not follow each other
	ErrNotFriends = errors.New("users must follow each other to exchange messages")

	// ErrInvalidContent is returned for empty or oversized messages
	ErrInvalidContent = errors.New("message must be between 1 and 1000 characters")

	// ErrSelfMessage is returned when sending a message to yourself
	ErrSelfMessage = errors.New("cannot send a message to yourself")

	// ErrMessageNotFound is returned when a message does not exist
	ErrMessageNotFound = errors.New("message not found")

	// ErrNotSender is returned when deleting a message sent by someone else
	ErrNotSender = errors.New("only the sender can delete this message")
)
