package follows

import "errors"

var (
	// ErrSelfFollow is returned when a user tries to follow themselves
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrAlreadyFollowing is returned when an active edge already exists
	ErrAlreadyFollowing = errors.New("already following this user")

	// ErrNotFollowing is returned when unfollowing without an active edge
	ErrNotFollowing = errors.New("not following this user")

	// ErrFollowNotFound is returned by the repository when no edge row exists at all
	ErrFollowNotFound = errors.New("follow not found")
)
