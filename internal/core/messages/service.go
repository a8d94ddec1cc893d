package messages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Murmur/internal/core/events"
	"Murmur/internal/core/users"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
)

type messageService struct {
	repo       Repository
	friends    FriendChecker
	dispatcher Dispatcher
	publisher  events.Publisher
}

// NewMessageService creates a new message service
func NewMessageService(repo Repository, friends FriendChecker, dispatcher Dispatcher, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &messageService{
		repo:       repo,
		friends:    friends,
		dispatcher: dispatcher,
		publisher:  publisher,
	}
}

func (s *messageService) Send(ctx context.Context, senderID, receiverID, content, originSession string) (*Message, error) {
	if senderID == receiverID {
		return nil, ErrSelfMessage
	}
	n := uniseg.GraphemeClusterCount(content)
	if strings.TrimSpace(content) == "" || n > MaxContentLength {
		return nil, ErrInvalidContent
	}

	ok, err := s.friends.AreFriends(ctx, senderID, receiverID)
	if err != nil {
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}
	if !ok {
		return nil, ErrNotFriends
	}

	msg := &Message{
		ID:         uuid.NewString(),
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	frame := Frame{Type: FrameReceiveMessage, Message: msg}
	for _, d := range []Delivery{
		{AccountID: receiverID, Frame: frame},
		{AccountID: senderID, Frame: frame, ExceptSession: originSession},
	} {
		if err := s.dispatcher.Dispatch(ctx, d); err != nil {
			// The message is stored; offline or unreachable sessions catch up from history
			slog.Warn("failed to dispatch message", "message_id", msg.ID, "account_id", d.AccountID, "error", err)
		}
	}

	events.Emit(ctx, s.publisher, events.New(events.MessageSent, msg.ID, senderID,
		map[string]string{"receiver_id": receiverID}))
	return msg, nil
}

func (s *messageService) Conversation(ctx context.Context, userID, otherID string, page users.Page) ([]*Message, error) {
	return s.repo.Conversation(ctx, userID, otherID, page.Normalize())
}

func (s *messageService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	msg, err := s.repo.GetByID(ctx, messageID)
	if err != nil {
		return err
	}
	if msg.SenderID != userID {
		return ErrNotSender
	}
	return s.repo.Delete(ctx, messageID)
}
