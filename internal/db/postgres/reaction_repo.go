package postgres

import (
	"context"
	"fmt"

	"Murmur/internal/core/reactions"

	"gorm.io/gorm"
)

type postgresReactionRepo struct {
	db *gorm.DB
}

// NewReactionRepository creates a new PostgreSQL reaction repository
func NewReactionRepository(db *gorm.DB) reactions.Repository {
	return &postgresReactionRepo{db: db}
}

// Create inserts a reaction. idx_reactions_unique rejects a second reaction of
// the same type, including one racing this insert.
func (r *postgresReactionRepo) Create(ctx context.Context, reaction *reactions.Reaction) error {
	row := &reactionRow{
		ID:           reaction.ID,
		ReactionerID: reaction.ReactionerID,
		PostID:       reaction.PostID,
		Type:         string(reaction.Type),
		CreatedAt:    reaction.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return reactions.ErrAlreadyReacted
		}
		return fmt.Errorf("failed to create reaction: %w", err)
	}
	return nil
}

// Delete removes a reaction
func (r *postgresReactionRepo) Delete(ctx context.Context, reactionerID, postID string, reactionType reactions.Type) error {
	res := r.db.WithContext(ctx).
		Where("reactioner_id = ? AND post_id = ? AND type = ?", reactionerID, postID, string(reactionType)).
		Delete(&reactionRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete reaction: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return reactions.ErrReactionNotFound
	}
	return nil
}

// PostIDsByUser lists the posts a user reacted to, newest reaction first
func (r *postgresReactionRepo) PostIDsByUser(ctx context.Context, reactionerID string, reactionType reactions.Type) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&reactionRow{}).
		Where("reactioner_id = ? AND type = ?", reactionerID, string(reactionType)).
		Order("created_at DESC, id ASC").
		Pluck("post_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reacted posts: %w", err)
	}
	return ids, nil
}
