package posts

import (
	"time"
)

// Post is an authored piece of content. A post with ParentID set is a comment.
type Post struct {
	CreatedAt time.Time `json:"createdAt"`
	ParentID  *string   `json:"parentId,omitempty"`
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	Status    Status    `json:"status"`
	Images    []string  `json:"images"`
}

// IsComment reports whether the post replies to another post
func (p *Post) IsComment() bool {
	return p.ParentID != nil
}

// Author is the author projection embedded in listed posts
type Author struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
}

// Engagement holds read-time tallies for a post
type Engagement struct {
	CommentCount int64 `json:"qtyComments"`
	LikeCount    int64 `json:"qtyLikes"`
	RetweetCount int64 `json:"qtyRetweets"`
}

// Score is the ranking weight used for comments
func (e Engagement) Score() int64 {
	return e.LikeCount + e.RetweetCount
}

// ExtendedPost is a post hydrated with its author and engagement counts.
// Images hold download URLs rather than stored names.
type ExtendedPost struct {
	Author Author `json:"author"`
	Post
	Engagement
}

// UploadTarget pairs a stored image name with the presigned URL to upload it to
type UploadTarget struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PendingPost is returned when a post waits for its media to be uploaded
type PendingPost struct {
	ID            string         `json:"id"`
	UploadTargets []UploadTarget `json:"uploadTargets"`
}

// ResultKind discriminates CreateResult
type ResultKind string

const (
	ResultPost    ResultKind = "post"
	ResultPending ResultKind = "pending"
)

// CreateResult is either a published post or a pending one awaiting uploads.
// Exactly one of Post and Pending is set, matching Kind.
type CreateResult struct {
	Post    *Post        `json:"post,omitempty"`
	Pending *PendingPost `json:"pending,omitempty"`
	Kind    ResultKind   `json:"kind"`
}

func publishedResult(p *Post) *CreateResult {
	return &CreateResult{Kind: ResultPost, Post: p}
}

func pendingResult(p *PendingPost) *CreateResult {
	return &CreateResult{Kind: ResultPending, Pending: p}
}

// CreatePostRequest is the input for creating a post or a comment
type CreatePostRequest struct {
	ParentID *string  `json:"-"`
	AuthorID string   `json:"-"`
	Content  string   `json:"content"`
	Images   []string `json:"images,omitempty"`
}
