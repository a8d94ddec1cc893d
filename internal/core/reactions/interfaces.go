package reactions

import (
	"context"

	"Murmur/internal/core/posts"
)

// Repository defines data access for reactions. The (reactioner, post, type)
// uniqueness is enforced by the store, not by a read-then-write check.
type Repository interface {
	// Create returns ErrAlreadyReacted on uniqueness conflicts
	Create(ctx context.Context, reaction *Reaction) error

	// Delete returns ErrReactionNotFound when no row matched
	Delete(ctx context.Context, reactionerID, postID string, reactionType Type) error

	// PostIDsByUser lists reacted post ids, newest reaction first
	PostIDsByUser(ctx context.Context, reactionerID string, reactionType Type) ([]string, error)
}

// PostReader loads posts through the viewer's visibility filter
type PostReader interface {
	GetVisiblePost(ctx context.Context, viewerID, postID string) (*posts.Post, error)
	GetPosts(ctx context.Context, viewerID string, postIDs []string) ([]*posts.ExtendedPost, error)
}

// VisibilityChecker decides whether a viewer may see an author's content
type VisibilityChecker interface {
	CanView(ctx context.Context, viewerID, authorID string) (bool, error)
}

// Service defines the business logic for reactions
type Service interface {
	React(ctx context.Context, userID, postID string, reactionType Type) (*Reaction, error)
	Unreact(ctx context.Context, userID, postID string, reactionType Type) error
	ListReactedPosts(ctx context.Context, viewerID, targetID string, reactionType Type) ([]*posts.ExtendedPost, error)
}
