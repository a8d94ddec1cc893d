package postgres

import (
	"context"
	"fmt"

	"Murmur/internal/core/messages"
	"Murmur/internal/core/users"

	"gorm.io/gorm"
)

type postgresMessageRepo struct {
	db *gorm.DB
}

// NewMessageRepository creates a new PostgreSQL message repository
func NewMessageRepository(db *gorm.DB) messages.Repository {
	return &postgresMessageRepo{db: db}
}

func (r *postgresMessageRepo) Create(ctx context.Context, msg *messages.Message) error {
	row := &messageRow{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
		CreatedAt:  msg.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

func (r *postgresMessageRepo) GetByID(ctx context.Context, id string) (*messages.Message, error) {
	var row messageRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if isNotFound(err) {
		return nil, messages.ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return row.toDomain(), nil
}

func (r *postgresMessageRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&messageRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete message: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return messages.ErrMessageNotFound
	}
	return nil
}

// Conversation pages through the messages between two accounts, newest first
func (r *postgresMessageRepo) Conversation(ctx context.Context, userID, otherID string, page users.Page) ([]*messages.Message, error) {
	var rows []messageRow
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userID, otherID, otherID, userID).
		Order("created_at DESC, id ASC").
		Limit(page.Limit).
		Offset(page.Skip).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	out := make([]*messages.Message, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}
