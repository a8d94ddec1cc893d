package postgres

import (
	"database/sql/driver"
	"time"

	"Murmur/internal/core/follows"
	"Murmur/internal/core/messages"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"
	"Murmur/internal/core/users"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Row structs mirror the tables created by internal/db/migrations.
// Tests build the same schema on SQLite through AutoMigrate.

type userRow struct {
	CreatedAt time.Time `gorm:"not null"`
	ID        string    `gorm:"primaryKey;size:36"`
	Username  string    `gorm:"size:64;not null;uniqueIndex:idx_users_username"`
	Name      string    `gorm:"size:128"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:idx_users_email"`
	Password  string    `gorm:"not null"`
	IsPublic  bool      `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

func (r *userRow) toDomain() *users.User {
	return &users.User{
		ID:           r.ID,
		Username:     r.Username,
		Name:         r.Name,
		Email:        r.Email,
		PasswordHash: r.Password,
		IsPublic:     r.IsPublic,
		CreatedAt:    r.CreatedAt,
	}
}

// followRow keeps one row per ordered pair; DeletedAt is the removal marker
type followRow struct {
	CreatedAt  time.Time      `gorm:"not null"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	ID         string         `gorm:"primaryKey;size:36"`
	FollowerID string         `gorm:"size:36;not null;uniqueIndex:idx_follows_pair"`
	FollowedID string         `gorm:"size:36;not null;uniqueIndex:idx_follows_pair;index"`
}

func (followRow) TableName() string { return "follows" }

func (r *followRow) toDomain() *follows.Follow {
	f := &follows.Follow{
		FollowerID: r.FollowerID,
		FollowedID: r.FollowedID,
		CreatedAt:  r.CreatedAt,
	}
	if r.DeletedAt.Valid {
		removed := r.DeletedAt.Time
		f.RemovedAt = &removed
	}
	return f
}

type postRow struct {
	CreatedAt time.Time      `gorm:"not null;index:idx_posts_timeline,priority:1,sort:desc"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
	ParentID  *string        `gorm:"size:36;index"`
	ID        string         `gorm:"primaryKey;size:36;index:idx_posts_timeline,priority:2"`
	AuthorID  string         `gorm:"size:36;not null;index"`
	Content   string         `gorm:"not null"`
	Status    string         `gorm:"size:16;not null"`
	Images    ImageList      `gorm:"not null"`
}

func (postRow) TableName() string { return "posts" }

func newPostRow(p *posts.Post) *postRow {
	return &postRow{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Content:   p.Content,
		Images:    ImageList(p.Images),
		Status:    string(p.Status),
		ParentID:  p.ParentID,
		CreatedAt: p.CreatedAt,
	}
}

func (r *postRow) toDomain() *posts.Post {
	return &posts.Post{
		ID:        r.ID,
		AuthorID:  r.AuthorID,
		Content:   r.Content,
		Images:    []string(r.Images),
		Status:    posts.Status(r.Status),
		ParentID:  r.ParentID,
		CreatedAt: r.CreatedAt,
	}
}

type reactionRow struct {
	CreatedAt    time.Time `gorm:"not null"`
	ID           string    `gorm:"primaryKey;size:36"`
	ReactionerID string    `gorm:"size:36;not null;uniqueIndex:idx_reactions_unique"`
	PostID       string    `gorm:"size:36;not null;uniqueIndex:idx_reactions_unique;index"`
	Type         string    `gorm:"size:16;not null;uniqueIndex:idx_reactions_unique"`
}

func (reactionRow) TableName() string { return "reactions" }

func (r *reactionRow) toDomain() *reactions.Reaction {
	return &reactions.Reaction{
		ID:           r.ID,
		ReactionerID: r.ReactionerID,
		PostID:       r.PostID,
		Type:         reactions.Type(r.Type),
		CreatedAt:    r.CreatedAt,
	}
}

type messageRow struct {
	CreatedAt  time.Time      `gorm:"not null;index"`
	DeletedAt  gorm.DeletedAt `gorm:"index"`
	ID         string         `gorm:"primaryKey;size:36"`
	SenderID   string         `gorm:"size:36;not null;index"`
	ReceiverID string         `gorm:"size:36;not null;index"`
	Content    string         `gorm:"not null"`
}

func (messageRow) TableName() string { return "messages" }

func (r *messageRow) toDomain() *messages.Message {
	return &messages.Message{
		ID:         r.ID,
		SenderID:   r.SenderID,
		ReceiverID: r.ReceiverID,
		Content:    r.Content,
		CreatedAt:  r.CreatedAt,
	}
}

// ImageList stores image names as a Postgres text[] (array literal text elsewhere)
type ImageList []string

// Value writes an empty array rather than NULL for a post without images
func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		return pq.StringArray{}.Value()
	}
	return pq.StringArray(l).Value()
}

func (l *ImageList) Scan(src interface{}) error {
	var arr pq.StringArray
	if err := arr.Scan(src); err != nil {
		return err
	}
	*l = ImageList(arr)
	return nil
}

func (ImageList) GormDataType() string {
	return "text[]"
}

func (ImageList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

// AllModels lists every row type, in dependency order
func AllModels() []interface{} {
	return []interface{}{
		&userRow{},
		&followRow{},
		&postRow{},
		&reactionRow{},
		&messageRow{},
	}
}
