package postgres

import (
	"context"
	"fmt"

	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"

	"gorm.io/gorm"
)

type postgresPostRepo struct {
	db *gorm.DB
}

// NewPostRepository creates a new PostgreSQL post repository
func NewPostRepository(db *gorm.DB) posts.Repository {
	return &postgresPostRepo{db: db}
}

// Create inserts a new post
func (r *postgresPostRepo) Create(ctx context.Context, post *posts.Post) error {
	if err := r.db.WithContext(ctx).Create(newPostRow(post)).Error; err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// GetByID retrieves a post by id, ignoring visibility and status
func (r *postgresPostRepo) GetByID(ctx context.Context, id string) (*posts.Post, error) {
	var row postRow
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error
	if isNotFound(err) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return row.toDomain(), nil
}

// Find returns the newest post matching filter
func (r *postgresPostRepo) Find(ctx context.Context, filter posts.Filter) (*posts.Post, error) {
	var row postRow
	err := r.db.WithContext(ctx).Model(&postRow{}).
		Scopes(r.filterScope(filter)).
		Order(orderForward).
		Take(&row).Error
	if isNotFound(err) {
		return nil, posts.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return row.toDomain(), nil
}

// FindAll returns every post matching filter in timeline order
func (r *postgresPostRepo) FindAll(ctx context.Context, filter posts.Filter) ([]*posts.Post, error) {
	var rows []postRow
	err := r.db.WithContext(ctx).Model(&postRow{}).
		Scopes(r.filterScope(filter)).
		Order(orderForward).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return toPosts(rows), nil
}

// List returns one window of posts matching filter. Backward windows are
// fetched nearest-first and reversed so every page reads newest first.
func (r *postgresPostRepo) List(ctx context.Context, filter posts.Filter, window posts.Window) ([]*posts.Post, error) {
	cursor, err := r.cursorScope(ctx, window)
	if err != nil {
		return nil, err
	}

	var rows []postRow
	err = r.db.WithContext(ctx).Model(&postRow{}).
		Scopes(r.filterScope(filter), cursor).
		Limit(window.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to page posts: %w", err)
	}

	if window.Backward() {
		for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
			rows[i], rows[j] = rows[j], rows[i]
		}
	}
	return toPosts(rows), nil
}

// Approve performs the single PENDING to APPROVED transition. The status guard
// in the WHERE clause makes concurrent finalizations race safely: only one
// update matches.
func (r *postgresPostRepo) Approve(ctx context.Context, id string) (*posts.Post, error) {
	res := r.db.WithContext(ctx).Model(&postRow{}).
		Where("id = ? AND status = ?", id, string(posts.StatusPending)).
		Update("status", string(posts.StatusApproved))
	if res.Error != nil {
		return nil, fmt.Errorf("failed to approve post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, posts.ErrPostNotFound
	}
	return r.GetByID(ctx, id)
}

// Delete soft-deletes a post
func (r *postgresPostRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&postRow{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete post: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return posts.ErrPostNotFound
	}
	return nil
}

type commentCount struct {
	ParentID string
	Total    int64
}

type reactionCount struct {
	PostID string
	Type   string
	Total  int64
}

// Engagement tallies approved comments and reactions for postIDs in two
// grouped queries
func (r *postgresPostRepo) Engagement(ctx context.Context, postIDs []string) (map[string]posts.Engagement, error) {
	out := make(map[string]posts.Engagement, len(postIDs))
	if len(postIDs) == 0 {
		return out, nil
	}

	var comments []commentCount
	err := r.db.WithContext(ctx).Model(&postRow{}).
		Select("parent_id, COUNT(*) AS total").
		Where("parent_id IN ? AND status = ?", postIDs, string(posts.StatusApproved)).
		Group("parent_id").
		Scan(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}
	for _, c := range comments {
		e := out[c.ParentID]
		e.CommentCount = c.Total
		out[c.ParentID] = e
	}

	var counts []reactionCount
	err = r.db.WithContext(ctx).Model(&reactionRow{}).
		Select("post_id, type, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id, type").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count reactions: %w", err)
	}
	for _, c := range counts {
		e := out[c.PostID]
		switch reactions.Type(c.Type) {
		case reactions.TypeLike:
			e.LikeCount = c.Total
		case reactions.TypeRetweet:
			e.RetweetCount = c.Total
		}
		out[c.PostID] = e
	}
	return out, nil
}

// Authors loads author projections keyed by account id
func (r *postgresPostRepo) Authors(ctx context.Context, authorIDs []string) (map[string]posts.Author, error) {
	out := make(map[string]posts.Author, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []userRow
	if err := r.db.WithContext(ctx).Where("id IN ?", authorIDs).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load authors: %w", err)
	}
	for _, u := range rows {
		out[u.ID] = posts.Author{ID: u.ID, Name: u.Name, Username: u.Username}
	}
	return out, nil
}

func toPosts(rows []postRow) []*posts.Post {
	out := make([]*posts.Post, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out
}
