package posts

import "context"

// Service defines the business logic interface for posts and comments
type Service interface {
	// CreatePost publishes a post, or stores it PENDING and returns upload
	// targets when it declares images
	CreatePost(ctx context.Context, req CreatePostRequest) (*CreateResult, error)

	// CreateComment does the same for a reply to req.ParentID, after checking
	// the parent exists, is APPROVED and is visible to the author
	CreateComment(ctx context.Context, req CreatePostRequest) (*CreateResult, error)

	// FinalizePost flips the author's PENDING post to APPROVED
	FinalizePost(ctx context.Context, authorID, postID string) (*Post, error)

	// RequestUploadTargets re-issues upload targets for the author's PENDING post
	RequestUploadTargets(ctx context.Context, authorID, postID string) (*PendingPost, error)

	GetPost(ctx context.Context, viewerID, postID string) (*ExtendedPost, error)
	GetVisiblePost(ctx context.Context, viewerID, postID string) (*Post, error)
	GetPosts(ctx context.Context, viewerID string, postIDs []string) ([]*ExtendedPost, error)

	ListFeed(ctx context.Context, viewerID string, window Window) ([]*ExtendedPost, error)
	ListComments(ctx context.Context, viewerID, parentID string, window Window) ([]*ExtendedPost, error)
	ListByAuthor(ctx context.Context, viewerID, authorID string, window Window) ([]*ExtendedPost, error)
	ListCommentsByAuthor(ctx context.Context, viewerID, authorID string, window Window) ([]*ExtendedPost, error)

	DeletePost(ctx context.Context, authorID, postID string) error
}

// Repository defines the data access interface for posts
type Repository interface {
	Create(ctx context.Context, post *Post) error

	// GetByID returns a non-deleted post regardless of visibility or status
	GetByID(ctx context.Context, id string) (*Post, error)

	// Find returns the first post matching filter, or ErrPostNotFound
	Find(ctx context.Context, filter Filter) (*Post, error)

	// FindAll returns every post matching filter, newest first
	FindAll(ctx context.Context, filter Filter) ([]*Post, error)

	// List returns one page of posts matching filter, ordered by creation time
	// descending then id ascending. Returns ErrInvalidCursor for unknown cursors.
	List(ctx context.Context, filter Filter, window Window) ([]*Post, error)

	// Approve moves a PENDING post to APPROVED exactly once. Returns
	// ErrPostNotFound when the post is not currently PENDING.
	Approve(ctx context.Context, id string) (*Post, error)

	Delete(ctx context.Context, id string) error

	// Engagement counts approved comments and reactions per post id
	Engagement(ctx context.Context, postIDs []string) (map[string]Engagement, error)

	// Authors resolves author projections by account id
	Authors(ctx context.Context, authorIDs []string) (map[string]Author, error)
}

// MediaStorage issues presigned URLs for post images
type MediaStorage interface {
	// RequestUploadTargets returns one URL per filename, in order
	RequestUploadTargets(ctx context.Context, ownerID, postID string, filenames []string) ([]string, error)
	// RequestDownloadTargets returns URLs for the uploaded subset of filenames, in order
	RequestDownloadTargets(ctx context.Context, ownerID, postID string, filenames []string) ([]string, error)
}

// VisibilityChecker decides whether a viewer may see an author's content
type VisibilityChecker interface {
	CanView(ctx context.Context, viewerID, authorID string) (bool, error)
}
