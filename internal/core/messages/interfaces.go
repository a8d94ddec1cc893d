package messages

import (
	"context"

	"Murmur/internal/core/users"
)

// Repository defines data access for messages
type Repository interface {
	Create(ctx context.Context, msg *Message) error
	GetByID(ctx context.Context, id string) (*Message, error)
	Delete(ctx context.Context, id string) error

	// Conversation returns messages exchanged in either direction, newest first
	Conversation(ctx context.Context, userID, otherID string, page users.Page) ([]*Message, error)
}

// FriendChecker reports whether two accounts follow each other
type FriendChecker interface {
	AreFriends(ctx context.Context, a, b string) (bool, error)
}

// Dispatcher hands deliveries to whichever instances hold the target sessions
type Dispatcher interface {
	Dispatch(ctx context.Context, d Delivery) error
}

// Service defines the business logic for direct messages
type Service interface {
	// Send stores the message and then delivers it to every live session of
	// the receiver and to the sender's other sessions
	Send(ctx context.Context, senderID, receiverID, content, originSession string) (*Message, error)
	Conversation(ctx context.Context, userID, otherID string, page users.Page) ([]*Message, error)
	DeleteMessage(ctx context.Context, userID, messageID string) error
}
