package reactions

import (
	"strings"
	"time"
)

// Type is the kind of reaction a user holds on a post
type Type string

const (
	TypeLike    Type = "LIKE"
	TypeRetweet Type = "RETWEET"
)

// ParseType accepts reaction types case-insensitively
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToUpper(strings.TrimSpace(s))); t {
	case TypeLike, TypeRetweet:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// Reaction is unique per (ReactionerID, PostID, Type)
type Reaction struct {
	CreatedAt    time.Time `json:"createdAt"`
	ID           string    `json:"id"`
	ReactionerID string    `json:"reactionerId"`
	PostID       string    `json:"postId"`
	Type         Type      `json:"type"`
}
