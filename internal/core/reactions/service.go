package reactions

import (
	"context"
	"fmt"
	"time"

	"Murmur/internal/core/events"
	"Murmur/internal/core/posts"

	"github.com/google/uuid"
)

type reactionService struct {
	repo       Repository
	posts      PostReader
	visibility VisibilityChecker
	publisher  events.Publisher
}

// NewReactionService creates a new reaction service
func NewReactionService(repo Repository, postReader PostReader, visibility VisibilityChecker, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &reactionService{
		repo:       repo,
		posts:      postReader,
		visibility: visibility,
		publisher:  publisher,
	}
}

// React records a reaction on an approved post the user can see.
// Concurrent duplicates are resolved by the store's unique index.
func (s *reactionService) React(ctx context.Context, userID, postID string, reactionType Type) (*Reaction, error) {
	if _, err := ParseType(string(reactionType)); err != nil {
		return nil, err
	}

	post, err := s.posts.GetVisiblePost(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	reaction := &Reaction{
		ID:           uuid.NewString(),
		ReactionerID: userID,
		PostID:       post.ID,
		Type:         reactionType,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, reaction); err != nil {
		return nil, err
	}

	events.Emit(ctx, s.publisher, events.New(events.ReactionCreated, post.ID, userID,
		map[string]string{"type": string(reactionType), "author_id": post.AuthorID}))
	return reaction, nil
}

func (s *reactionService) Unreact(ctx context.Context, userID, postID string, reactionType Type) error {
	if _, err := ParseType(string(reactionType)); err != nil {
		return err
	}
	return s.repo.Delete(ctx, userID, postID, reactionType)
}

// ListReactedPosts lists the posts targetID reacted to that viewerID may see
func (s *reactionService) ListReactedPosts(ctx context.Context, viewerID, targetID string, reactionType Type) ([]*posts.ExtendedPost, error) {
	if _, err := ParseType(string(reactionType)); err != nil {
		return nil, err
	}

	ok, err := s.visibility.CanView(ctx, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to check visibility: %w", err)
	}
	if !ok {
		return nil, ErrUserNotFound
	}

	postIDs, err := s.repo.PostIDsByUser(ctx, targetID, reactionType)
	if err != nil {
		return nil, fmt.Errorf("failed to list reactions: %w", err)
	}
	return s.posts.GetPosts(ctx, viewerID, postIDs)
}
