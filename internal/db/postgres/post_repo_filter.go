package postgres

import (
	"context"
	"fmt"

	"Murmur/internal/core/posts"

	"gorm.io/gorm"
)

// Timeline ordering is (created_at DESC, id ASC). It relies on
// idx_posts_timeline and on the partial index over deleted_at IS NULL created
// by the migrations.
const (
	orderForward  = "posts.created_at DESC, posts.id ASC"
	orderBackward = "posts.created_at ASC, posts.id DESC"
)

// filterScope translates a composed filter into WHERE clauses. Soft-deleted
// rows are already excluded by the model scope.
func (r *postgresPostRepo) filterScope(filter posts.Filter) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		publicAuthors := r.db.Model(&userRow{}).Select("id").Where("is_public = ?", true)
		q = q.Where(
			r.db.Where("posts.author_id IN ?", nonEmpty(filter.VisibleAuthorIDs)).
				Or("posts.author_id IN (?)", publicAuthors),
		)

		q = q.Where("posts.status = ?", string(filter.Status))

		switch filter.Parentage {
		case posts.TopLevel:
			q = q.Where("posts.parent_id IS NULL")
		case posts.RepliesTo:
			q = q.Where("posts.parent_id = ?", *filter.ParentID)
		case posts.RepliesOnly:
			q = q.Where("posts.parent_id IS NOT NULL")
		}

		if filter.AuthorID != "" {
			q = q.Where("posts.author_id = ?", filter.AuthorID)
		}
		if len(filter.PostIDs) > 0 {
			q = q.Where("posts.id IN ?", filter.PostIDs)
		}
		return q
	}
}

// cursorScope restricts q to rows strictly after (or before) the cursor post in
// timeline order. The cursor's timestamp is read in a subquery so that the
// comparison happens in the database's own time representation.
func (r *postgresPostRepo) cursorScope(ctx context.Context, window posts.Window) (func(*gorm.DB) *gorm.DB, error) {
	var cursor *string
	switch {
	case window.After != nil:
		cursor = window.After
	case window.Before != nil:
		cursor = window.Before
	default:
		return func(q *gorm.DB) *gorm.DB { return q.Order(orderForward) }, nil
	}

	// A cursor may name a post that has since been deleted or filtered out;
	// only ids that never existed are rejected.
	var count int64
	if err := r.db.WithContext(ctx).Unscoped().Model(&postRow{}).Where("id = ?", *cursor).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve cursor: %w", err)
	}
	if count == 0 {
		return nil, posts.ErrInvalidCursor
	}

	at := r.db.Unscoped().Model(&postRow{}).Select("created_at").Where("id = ?", *cursor)
	if window.Backward() {
		return func(q *gorm.DB) *gorm.DB {
			return q.Where("(posts.created_at > (?) OR (posts.created_at = (?) AND posts.id < ?))", at, at, *cursor).
				Order(orderBackward)
		}, nil
	}
	return func(q *gorm.DB) *gorm.DB {
		return q.Where("(posts.created_at < (?) OR (posts.created_at = (?) AND posts.id > ?))", at, at, *cursor).
			Order(orderForward)
	}, nil
}

// nonEmpty keeps "IN ?" well formed for an anonymous viewer
func nonEmpty(ids []string) []string {
	if len(ids) == 0 {
		return []string{""}
	}
	return ids
}
