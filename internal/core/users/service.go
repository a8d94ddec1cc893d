package users

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

type userService struct {
	userRepo Repository
	follows  FollowLookup
	storage  ProfileImageStorage
}

// NewUserService creates a new user service
func NewUserService(userRepo Repository, follows FollowLookup, storage ProfileImageStorage) Service {
	return &userService{
		userRepo: userRepo,
		follows:  follows,
		storage:  storage,
	}
}

// GetUser returns the profile of id as seen by viewerID.
// Viewing someone else includes whether they follow the viewer back.
func (s *userService) GetUser(ctx context.Context, viewerID, id string) (*ExtendedUserView, error) {
	if strings.TrimSpace(id) == "" {
		return nil, NewValidationError("userId", "required")
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	view := &ExtendedUserView{
		UserView: user.ToView(),
		IsPublic: user.IsPublic,
	}
	view.ProfilePicture = s.profilePicture(ctx, user.ID)

	if viewerID != "" && viewerID != user.ID {
		followsYou, err := s.follows.IsFollowing(ctx, user.ID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check follow state: %w", err)
		}
		view.FollowsYou = &followsYou
	}

	return view, nil
}

// SearchByUsername finds users whose username contains term
func (s *userService) SearchByUsername(ctx context.Context, term string, page Page) ([]UserView, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, NewValidationError("username", "search term is required")
	}

	found, err := s.userRepo.SearchByUsername(ctx, term, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return s.views(ctx, found), nil
}

// Recommendations suggests accounts followed by the accounts viewerID follows
func (s *userService) Recommendations(ctx context.Context, viewerID string, page Page) ([]UserView, error) {
	found, err := s.userRepo.Recommendations(ctx, viewerID, page.Normalize())
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return s.views(ctx, found), nil
}

func (s *userService) SetVisibility(ctx context.Context, id string, isPublic bool) error {
	return s.userRepo.SetVisibility(ctx, id, isPublic)
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	return s.userRepo.Delete(ctx, id)
}

// CreateProfileImageUpload returns a presigned URL the client uploads its picture to
func (s *userService) CreateProfileImageUpload(ctx context.Context, id string) (string, error) {
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return "", err
	}

	url, err := s.storage.ProfileImageUploadURL(ctx, id)
	if err != nil {
		return "", fmt.Errorf("failed to presign profile image upload: %w", err)
	}
	return url, nil
}

func (s *userService) views(ctx context.Context, found []*User) []UserView {
	views := make([]UserView, 0, len(found))
	for _, u := range found {
		v := u.ToView()
		v.ProfilePicture = s.profilePicture(ctx, u.ID)
		views = append(views, v)
	}
	return views
}

// profilePicture never fails: a missing or unreachable picture is reported as nil
func (s *userService) profilePicture(ctx context.Context, userID string) *string {
	if s.storage == nil {
		return nil
	}
	url, err := s.storage.ProfileImageURL(ctx, userID)
	if err != nil {
		slog.Warn("failed to resolve profile picture", "user_id", userID, "error", err)
		return nil
	}
	return url
}
