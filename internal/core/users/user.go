package users

import (
	"time"
)

// User is an account on the network. Content visibility of an account is
// governed solely by IsPublic plus the follow edges pointing at it.
type User struct {
	CreatedAt    time.Time `json:"createdAt"`
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsPublic     bool      `json:"isPublic"`
}

// UserView is the public projection of a user
type UserView struct {
	ProfilePicture *string `json:"profilePicture"`
	ID             string  `json:"id"`
	Name           string  `json:"name,omitempty"`
	Username       string  `json:"username"`
}

// ExtendedUserView is returned when a user looks at another profile.
// FollowsYou is nil when viewing your own profile.
type ExtendedUserView struct {
	FollowsYou *bool `json:"followsYou,omitempty"`
	UserView
	IsPublic bool `json:"isPublic"`
}

// Page is an offset window used by user search and recommendations
type Page struct {
	Limit int
	Skip  int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps the page to sane bounds
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	if p.Skip < 0 {
		p.Skip = 0
	}
	return p
}

// ToView projects a user into its public view
func (u *User) ToView() UserView {
	return UserView{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
	}
}
