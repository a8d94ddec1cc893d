package follows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Murmur/internal/core/events"
	"Murmur/internal/core/users"
)

type followService struct {
	repo      Repository
	users     UserLookup
	publisher events.Publisher
}

// NewFollowService creates a new follow service
func NewFollowService(repo Repository, userLookup UserLookup, publisher events.Publisher) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &followService{
		repo:      repo,
		users:     userLookup,
		publisher: publisher,
	}
}

// Follow creates an active edge, reactivating a previously removed one when present
func (s *followService) Follow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	if _, err := s.users.GetByID(ctx, followedID); err != nil {
		return err
	}

	existing, err := s.repo.Get(ctx, followerID, followedID)
	switch {
	case errors.Is(err, ErrFollowNotFound):
		err = s.repo.Create(ctx, &Follow{
			FollowerID: followerID,
			FollowedID: followedID,
			CreatedAt:  time.Now().UTC(),
		})
	case err != nil:
		return fmt.Errorf("failed to load follow: %w", err)
	case existing.Active():
		return ErrAlreadyFollowing
	default:
		err = s.repo.Reactivate(ctx, followerID, followedID)
	}
	if err != nil {
		return err
	}

	events.Emit(ctx, s.publisher, events.New(events.FollowCreated, followedID, followerID, nil))
	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followedID string) error {
	if followerID == followedID {
		return ErrSelfFollow
	}
	return s.repo.Remove(ctx, followerID, followedID)
}

func (s *followService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	return s.repo.IsFollowing(ctx, followerID, followedID)
}

func (s *followService) FollowedIDs(ctx context.Context, userID string) ([]string, error) {
	return s.repo.FollowedIDs(ctx, userID)
}

func (s *followService) Friends(ctx context.Context, userID string) ([]users.UserView, error) {
	friends, err := s.repo.Friends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	views := make([]users.UserView, 0, len(friends))
	for _, f := range friends {
		views = append(views, f.ToView())
	}
	return views, nil
}

// AreFriends requires active edges in both directions, so it is symmetric in a and b
func (s *followService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	if a == b {
		return true, nil
	}

	forward, err := s.repo.IsFollowing(ctx, a, b)
	if err != nil || !forward {
		return false, err
	}
	return s.repo.IsFollowing(ctx, b, a)
}
