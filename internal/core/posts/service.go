package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"Murmur/internal/core/events"

	"github.com/google/uuid"
	"github.com/rivo/uniseg"
	"golang.org/x/sync/errgroup"
)

type postService struct {
	repo       Repository
	filters    *FilterBuilder
	visibility VisibilityChecker
	storage    MediaStorage
	publisher  events.Publisher
	now        func() time.Time
}

// NewPostService creates a new post service
func NewPostService(
	repo Repository,
	filters *FilterBuilder,
	visibility VisibilityChecker,
	storage MediaStorage,
	publisher events.Publisher,
) Service {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &postService{
		repo:       repo,
		filters:    filters,
		visibility: visibility,
		storage:    storage,
		publisher:  publisher,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CreatePost creates a top-level post
func (s *postService) CreatePost(ctx context.Context, req CreatePostRequest) (*CreateResult, error) {
	req.ParentID = nil
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}
	return s.create(ctx, req)
}

// CreateComment creates a reply. Every parent check runs before any row is written.
func (s *postService) CreateComment(ctx context.Context, req CreatePostRequest) (*CreateResult, error) {
	if req.ParentID == nil || *req.ParentID == "" {
		return nil, NewValidationError("parentId", "required")
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}

	parent, err := s.repo.GetByID(ctx, *req.ParentID)
	if err != nil {
		return nil, err
	}

	// Visibility goes first so a hidden parent's status is never revealed
	ok, err := s.visibility.CanView(ctx, req.AuthorID, parent.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check parent visibility: %w", err)
	}
	if !ok {
		return nil, ErrParentNotVisible
	}
	if !parent.Status.AcceptsComments() {
		return nil, ErrParentPending
	}

	return s.create(ctx, req)
}

// create writes the row first and only then asks storage for upload targets
func (s *postService) create(ctx context.Context, req CreatePostRequest) (*CreateResult, error) {
	images := DedupeImageNames(req.Images)
	post := &Post{
		ID:        uuid.NewString(),
		AuthorID:  req.AuthorID,
		Content:   req.Content,
		Images:    images,
		ParentID:  req.ParentID,
		Status:    InitialStatus(images),
		CreatedAt: s.now(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	events.Emit(ctx, s.publisher, postEvent(events.PostCreated, post))

	if post.Status == StatusApproved {
		return publishedResult(post), nil
	}

	pending, err := s.pendingPost(ctx, post)
	if err != nil {
		return nil, &UploadTargetsError{PostID: post.ID, Err: err}
	}
	return pendingResult(pending), nil
}

// FinalizePost only matches posts that are currently PENDING, so finalizing an
// APPROVED post reports not found
func (s *postService) FinalizePost(ctx context.Context, authorID, postID string) (*Post, error) {
	post, err := s.findPending(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	if !post.Status.CanTransitionTo(StatusApproved) {
		return nil, ErrPostNotFound
	}

	approved, err := s.repo.Approve(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, s.publisher, postEvent(events.PostFinalized, approved))
	return approved, nil
}

// RequestUploadTargets is the retry path for a PENDING post whose targets were lost
func (s *postService) RequestUploadTargets(ctx context.Context, authorID, postID string) (*PendingPost, error) {
	post, err := s.findPending(ctx, authorID, postID)
	if err != nil {
		return nil, err
	}
	return s.pendingPost(ctx, post)
}

func (s *postService) findPending(ctx context.Context, authorID, postID string) (*Post, error) {
	filter, err := s.filters.Build(ctx, authorID, FilterOptions{
		PostIDs: []string{postID},
		Status:  StatusPending,
	})
	if err != nil {
		return nil, err
	}

	post, err := s.repo.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != authorID {
		return nil, ErrNotAuthor
	}
	return post, nil
}

func (s *postService) pendingPost(ctx context.Context, post *Post) (*PendingPost, error) {
	urls, err := s.storage.RequestUploadTargets(ctx, post.AuthorID, post.ID, post.Images)
	if err != nil {
		return nil, err
	}
	if len(urls) != len(post.Images) {
		return nil, fmt.Errorf("storage returned %d upload targets for %d images", len(urls), len(post.Images))
	}

	targets := make([]UploadTarget, len(post.Images))
	for i, name := range post.Images {
		targets[i] = UploadTarget{Name: name, URL: urls[i]}
	}
	return &PendingPost{ID: post.ID, UploadTargets: targets}, nil
}

// GetPost returns a single approved post or comment the viewer may see
func (s *postService) GetPost(ctx context.Context, viewerID, postID string) (*ExtendedPost, error) {
	post, err := s.GetVisiblePost(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	hydrated, err := s.hydrate(ctx, []*Post{post})
	if err != nil {
		return nil, err
	}
	return hydrated[0], nil
}

// GetVisiblePost is GetPost without author and engagement hydration
func (s *postService) GetVisiblePost(ctx context.Context, viewerID, postID string) (*Post, error) {
	filter, err := s.filters.Build(ctx, viewerID, FilterOptions{PostIDs: []string{postID}})
	if err != nil {
		return nil, err
	}
	return s.repo.Find(ctx, filter)
}

// GetPosts returns the visible subset of postIDs, preserving the given order
func (s *postService) GetPosts(ctx context.Context, viewerID string, postIDs []string) ([]*ExtendedPost, error) {
	if len(postIDs) == 0 {
		return []*ExtendedPost{}, nil
	}

	filter, err := s.filters.Build(ctx, viewerID, FilterOptions{PostIDs: postIDs})
	if err != nil {
		return nil, err
	}
	found, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	byID := make(map[string]*Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}
	ordered := make([]*Post, 0, len(found))
	for _, id := range postIDs {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return s.hydrate(ctx, ordered)
}

// ListFeed returns top-level posts from the viewer, followed accounts and public accounts
func (s *postService) ListFeed(ctx context.Context, viewerID string, window Window) ([]*ExtendedPost, error) {
	return s.list(ctx, viewerID, FilterOptions{}, window)
}

// ListComments returns one page of comments on parentID ranked by engagement
func (s *postService) ListComments(ctx context.Context, viewerID, parentID string, window Window) ([]*ExtendedPost, error) {
	comments, err := s.list(ctx, viewerID, FilterOptions{ParentID: &parentID}, window)
	if err != nil {
		return nil, err
	}
	return RankComments(comments), nil
}

func (s *postService) ListByAuthor(ctx context.Context, viewerID, authorID string, window Window) ([]*ExtendedPost, error) {
	if err := s.requireVisibleAuthor(ctx, viewerID, authorID); err != nil {
		return nil, err
	}
	return s.list(ctx, viewerID, FilterOptions{AuthorID: authorID}, window)
}

func (s *postService) ListCommentsByAuthor(ctx context.Context, viewerID, authorID string, window Window) ([]*ExtendedPost, error) {
	if err := s.requireVisibleAuthor(ctx, viewerID, authorID); err != nil {
		return nil, err
	}
	return s.list(ctx, viewerID, FilterOptions{AuthorID: authorID, CommentsOnly: true}, window)
}

func (s *postService) requireVisibleAuthor(ctx context.Context, viewerID, authorID string) error {
	ok, err := s.visibility.CanView(ctx, viewerID, authorID)
	if err != nil {
		return fmt.Errorf("failed to check author visibility: %w", err)
	}
	if !ok {
		return ErrAuthorNotFound
	}
	return nil
}

func (s *postService) list(ctx context.Context, viewerID string, opts FilterOptions, window Window) ([]*ExtendedPost, error) {
	if err := window.Validate(); err != nil {
		return nil, err
	}

	filter, err := s.filters.Build(ctx, viewerID, opts)
	if err != nil {
		return nil, err
	}

	page, err := s.repo.List(ctx, filter, window.Normalize())
	if err != nil {
		return nil, err
	}
	return s.hydrate(ctx, page)
}

// DeletePost soft-deletes a post. A PENDING post is only found by its author.
func (s *postService) DeletePost(ctx context.Context, authorID, postID string) error {
	post, err := s.GetVisiblePost(ctx, authorID, postID)
	if errors.Is(err, ErrPostNotFound) {
		post, err = s.repo.GetByID(ctx, postID)
		if err == nil && (post.Status != StatusPending || post.AuthorID != authorID) {
			err = ErrPostNotFound
		}
	}
	if err != nil {
		return err
	}

	if post.AuthorID != authorID {
		return ErrNotAuthor
	}

	if err := s.repo.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	events.Emit(ctx, s.publisher, postEvent(events.PostDeleted, post))
	return nil
}

// hydrate attaches authors, engagement counts and image download URLs.
// The lookups are independent reads and run concurrently.
func (s *postService) hydrate(ctx context.Context, page []*Post) ([]*ExtendedPost, error) {
	out := make([]*ExtendedPost, len(page))
	if len(page) == 0 {
		return out, nil
	}

	postIDs := make([]string, len(page))
	authorIDs := make([]string, 0, len(page))
	seenAuthor := make(map[string]bool, len(page))
	for i, p := range page {
		postIDs[i] = p.ID
		if !seenAuthor[p.AuthorID] {
			seenAuthor[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	var (
		engagement map[string]Engagement
		authors    map[string]Author
		imageURLs  = make([][]string, len(page))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		engagement, err = s.repo.Engagement(gctx, postIDs)
		if err != nil {
			return fmt.Errorf("failed to count engagement: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		authors, err = s.repo.Authors(gctx, authorIDs)
		if err != nil {
			return fmt.Errorf("failed to load authors: %w", err)
		}
		return nil
	})
	for i, p := range page {
		if len(p.Images) == 0 {
			continue
		}
		g.Go(func() error {
			urls, err := s.storage.RequestDownloadTargets(gctx, p.AuthorID, p.ID, p.Images)
			if err != nil {
				return fmt.Errorf("failed to presign images for post %s: %w", p.ID, err)
			}
			imageURLs[i] = urls
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, p := range page {
		ext := &ExtendedPost{
			Post:       *p,
			Author:     authors[p.AuthorID],
			Engagement: engagement[p.ID],
		}
		if ext.Author.ID == "" {
			slog.Warn("post author missing during hydration", "post_id", p.ID, "author_id", p.AuthorID)
			ext.Author.ID = p.AuthorID
		}
		if len(p.Images) > 0 {
			ext.Images = imageURLs[i]
		}
		out[i] = ext
	}
	return out, nil
}

func (s *postService) validateCreateRequest(req CreatePostRequest) error {
	if strings.TrimSpace(req.AuthorID) == "" {
		return NewValidationError("authorId", "required")
	}
	if strings.TrimSpace(req.Content) == "" {
		return NewValidationError("content", "required")
	}
	if uniseg.GraphemeClusterCount(req.Content) > MaxContentLength {
		return NewValidationError("content", fmt.Sprintf("must be at most %d characters", MaxContentLength))
	}
	return validateImageNames(req.Images)
}

func postEvent(eventType string, p *Post) events.Event {
	attrs := map[string]string{"status": string(p.Status)}
	if p.ParentID != nil {
		attrs["parent_id"] = *p.ParentID
	}
	return events.New(eventType, p.ID, p.AuthorID, attrs)
}
