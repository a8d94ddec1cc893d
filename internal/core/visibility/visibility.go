// Package visibility decides whether a viewer may see an author's content.
//
// An author's content is visible to a viewer when the viewer is the author,
// when the author's account is public, or when the viewer holds an active
// follow edge to the author. Nothing else grants partial visibility.
package visibility

import (
	"context"
	"errors"
)

// ErrAccountNotFound is returned by AccountLookup when no account matches
var ErrAccountNotFound = errors.New("account not found")

// Account is the slice of account state the predicate depends on
type Account struct {
	ID       string
	IsPublic bool
}

// AccountLookup resolves an account by id, returning ErrAccountNotFound when absent
type AccountLookup interface {
	AccountByID(ctx context.Context, id string) (*Account, error)
}

// FollowLookup reports whether an active (non-removed) follow edge exists
type FollowLookup interface {
	IsFollowing(ctx context.Context, followerID, followedID string) (bool, error)
}

// Predicate evaluates CanView against current store state. It holds no cache:
// every call re-reads accounts and follow edges.
type Predicate struct {
	accounts AccountLookup
	follows  FollowLookup
}

// NewPredicate creates a visibility predicate
func NewPredicate(accounts AccountLookup, follows FollowLookup) *Predicate {
	return &Predicate{
		accounts: accounts,
		follows:  follows,
	}
}

// CanView reports whether viewerID may see content authored by authorID.
// A missing author is simply not viewable; callers decide how to surface that.
func (p *Predicate) CanView(ctx context.Context, viewerID, authorID string) (bool, error) {
	if viewerID != "" && viewerID == authorID {
		return true, nil
	}

	author, err := p.accounts.AccountByID(ctx, authorID)
	if errors.Is(err, ErrAccountNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if author.IsPublic {
		return true, nil
	}
	if viewerID == "" {
		return false, nil
	}

	return p.follows.IsFollowing(ctx, viewerID, authorID)
}
