package posts

import (
	"context"
	"fmt"
)

// Parentage restricts which side of the post/comment split a filter matches
type Parentage int

const (
	// TopLevel matches posts without a parent
	TopLevel Parentage = iota
	// RepliesTo matches comments on Filter.ParentID
	RepliesTo
	// RepliesOnly matches any comment
	RepliesOnly
	// AnyParentage matches posts and comments alike
	AnyParentage
)

// Filter is the composed visibility, status and parentage constraint shared by
// every listing. A row matches when its author is in VisibleAuthorIDs or has a
// public account, and every other set field matches too.
type Filter struct {
	ParentID         *string
	AuthorID         string
	Status           Status
	ViewerID         string
	VisibleAuthorIDs []string
	PostIDs          []string
	Parentage        Parentage
}

// FilterOptions narrows a filter beyond visibility
type FilterOptions struct {
	ParentID     *string
	Status       Status
	AuthorID     string
	PostIDs      []string
	CommentsOnly bool
}

// FollowLookup lists the accounts a user actively follows
type FollowLookup interface {
	FollowedIDs(ctx context.Context, userID string) ([]string, error)
}

// FilterBuilder composes filters from current follow state. It reads the
// following set on every call and never caches it.
type FilterBuilder struct {
	follows FollowLookup
}

// NewFilterBuilder creates a filter builder
func NewFilterBuilder(follows FollowLookup) *FilterBuilder {
	return &FilterBuilder{follows: follows}
}

// Build returns the filter for viewerID with opts applied
func (b *FilterBuilder) Build(ctx context.Context, viewerID string, opts FilterOptions) (Filter, error) {
	var followed []string
	if viewerID != "" {
		var err error
		followed, err = b.follows.FollowedIDs(ctx, viewerID)
		if err != nil {
			return Filter{}, fmt.Errorf("failed to load followed accounts: %w", err)
		}
	}
	return ComposeFilter(viewerID, followed, opts), nil
}

// ComposeFilter builds a filter from an already loaded following set.
// Looking up explicit post ids matches posts and comments alike; otherwise a
// ParentID selects its comments, CommentsOnly selects any comment, and the
// default excludes comments.
func ComposeFilter(viewerID string, followed []string, opts FilterOptions) Filter {
	visible := make([]string, 0, len(followed)+1)
	if viewerID != "" {
		visible = append(visible, viewerID)
	}
	for _, id := range followed {
		if id != viewerID {
			visible = append(visible, id)
		}
	}

	status := opts.Status
	if status == "" {
		status = StatusApproved
	}

	f := Filter{
		ViewerID:         viewerID,
		VisibleAuthorIDs: visible,
		Status:           status,
		AuthorID:         opts.AuthorID,
		PostIDs:          opts.PostIDs,
	}

	switch {
	case len(opts.PostIDs) > 0:
		f.Parentage = AnyParentage
	case opts.ParentID != nil:
		f.Parentage = RepliesTo
		f.ParentID = opts.ParentID
	case opts.CommentsOnly:
		f.Parentage = RepliesOnly
	default:
		f.Parentage = TopLevel
	}
	return f
}
