package postgres

import (
	"context"
	"fmt"

	"Murmur/internal/core/follows"
	"Murmur/internal/core/users"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type postgresFollowRepo struct {
	db *gorm.DB
}

// NewFollowRepository creates a new PostgreSQL follow repository
func NewFollowRepository(db *gorm.DB) follows.Repository {
	return &postgresFollowRepo{db: db}
}

// Get returns the pair's row even when it has been removed
func (r *postgresFollowRepo) Get(ctx context.Context, followerID, followedID string) (*follows.Follow, error) {
	var row followRow
	err := r.db.WithContext(ctx).Unscoped().
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Take(&row).Error
	if isNotFound(err) {
		return nil, follows.ErrFollowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get follow: %w", err)
	}
	return row.toDomain(), nil
}

// Create inserts a new edge. A concurrent insert for the same pair loses on the unique index.
func (r *postgresFollowRepo) Create(ctx context.Context, follow *follows.Follow) error {
	row := &followRow{
		ID:         uuid.NewString(),
		FollowerID: follow.FollowerID,
		FollowedID: follow.FollowedID,
		CreatedAt:  follow.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return follows.ErrAlreadyFollowing
		}
		return fmt.Errorf("failed to create follow: %w", err)
	}
	return nil
}

// Reactivate clears the removal marker; an already active edge is a conflict
func (r *postgresFollowRepo) Reactivate(ctx context.Context, followerID, followedID string) error {
	res := r.db.WithContext(ctx).Unscoped().Model(&followRow{}).
		Where("follower_id = ? AND followed_id = ? AND deleted_at IS NOT NULL", followerID, followedID).
		Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to reactivate follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return follows.ErrAlreadyFollowing
	}
	return nil
}

// Remove soft-deletes the active edge
func (r *postgresFollowRepo) Remove(ctx context.Context, followerID, followedID string) error {
	res := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&followRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to remove follow: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return follows.ErrNotFollowing
	}
	return nil
}

func (r *postgresFollowRepo) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&followRow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow: %w", err)
	}
	return count > 0, nil
}

func (r *postgresFollowRepo) FollowedIDs(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&followRow{}).
		Where("follower_id = ?", userID).
		Order("followed_id ASC").
		Pluck("followed_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followed accounts: %w", err)
	}
	return ids, nil
}

// Friends returns accounts with active edges in both directions
func (r *postgresFollowRepo) Friends(ctx context.Context, userID string) ([]*users.User, error) {
	following := r.db.Model(&followRow{}).Select("followed_id").
		Where("follower_id = ? AND deleted_at IS NULL", userID)
	followers := r.db.Model(&followRow{}).Select("follower_id").
		Where("followed_id = ? AND deleted_at IS NULL", userID)

	var rows []userRow
	err := r.db.WithContext(ctx).
		Where("id IN (?)", following).
		Where("id IN (?)", followers).
		Order("username ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return toUsers(rows), nil
}
