package follows

import (
	"context"

	"Murmur/internal/core/users"
)

// Repository defines data access for follow edges
type Repository interface {
	// Get returns the edge row for the ordered pair, active or removed.
	// Returns ErrFollowNotFound when the pair has never been followed.
	Get(ctx context.Context, followerID, followedID string) (*Follow, error)

	// Create inserts a new active edge. Returns ErrAlreadyFollowing on uniqueness conflicts.
	Create(ctx context.Context, follow *Follow) error

	// Reactivate clears the removal marker of an existing removed edge
	Reactivate(ctx context.Context, followerID, followedID string) error

	// Remove sets the removal marker on the active edge. Returns ErrNotFollowing when none is active.
	Remove(ctx context.Context, followerID, followedID string) error

	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	FollowedIDs(ctx context.Context, userID string) ([]string, error)

	// Friends returns accounts with active edges in both directions
	Friends(ctx context.Context, userID string) ([]*users.User, error)
}

// UserLookup resolves accounts so follows to missing users can be rejected
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*users.User, error)
}

// Service defines the business logic for following accounts
type Service interface {
	Follow(ctx context.Context, followerID, followedID string) error
	Unfollow(ctx context.Context, followerID, followedID string) error
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
	FollowedIDs(ctx context.Context, userID string) ([]string, error)
	Friends(ctx context.Context, userID string) ([]users.UserView, error)
	AreFriends(ctx context.Context, a, b string) (bool, error)
}
