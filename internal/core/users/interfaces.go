package users

import "context"

// Repository defines data access for users
type Repository interface {
	// Create inserts a user. Returns ErrUsernameTaken or ErrEmailTaken on uniqueness conflicts.
	Create(ctx context.Context, user *User) error

	// GetByID returns ErrUserNotFound when the account does not exist
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)

	// SearchByUsername matches usernames containing term, case-insensitively
	SearchByUsername(ctx context.Context, term string, page Page) ([]*User, error)

	// Recommendations returns accounts followed by the accounts the viewer follows,
	// excluding the viewer and accounts the viewer already follows
	Recommendations(ctx context.Context, viewerID string, page Page) ([]*User, error)

	SetVisibility(ctx context.Context, id string, isPublic bool) error
	Delete(ctx context.Context, id string) error
}

// ProfileImageStorage issues presigned URLs for profile pictures
type ProfileImageStorage interface {
	ProfileImageUploadURL(ctx context.Context, userID string) (string, error)

	// ProfileImageURL returns nil when the user has no picture
	ProfileImageURL(ctx context.Context, userID string) (*string, error)
}

// FollowLookup answers whether an active follow edge exists
type FollowLookup interface {
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
}

// Service defines the business logic for accounts
type Service interface {
	GetUser(ctx context.Context, viewerID, id string) (*ExtendedUserView, error)
	SearchByUsername(ctx context.Context, term string, page Page) ([]UserView, error)
	Recommendations(ctx context.Context, viewerID string, page Page) ([]UserView, error)
	SetVisibility(ctx context.Context, id string, isPublic bool) error
	DeleteUser(ctx context.Context, id string) error
	CreateProfileImageUpload(ctx context.Context, id string) (string, error)
}
