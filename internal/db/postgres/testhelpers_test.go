package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Murmur/internal/core/posts"
	"Murmur/internal/core/users"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a private in-memory SQLite database with the full schema
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(AllModels()...), "Failed to migrate test schema")
	return db
}

var baseTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func createTestUser(t *testing.T, db *gorm.DB, id string, public bool) *users.User {
	t.Helper()
	user := &users.User{
		ID:           id,
		Username:     "user_" + id,
		Name:         "User " + id,
		Email:        id + "@example.com",
		PasswordHash: "hash",
		IsPublic:     public,
		CreatedAt:    baseTime,
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}

func createTestPost(t *testing.T, db *gorm.DB, id, authorID string, parentID *string, status posts.Status, at time.Time) *posts.Post {
	t.Helper()
	post := &posts.Post{
		ID:        id,
		AuthorID:  authorID,
		ParentID:  parentID,
		Content:   fmt.Sprintf("post %s", id),
		Status:    status,
		CreatedAt: at,
	}
	require.NoError(t, NewPostRepository(db).Create(context.Background(), post))
	return post
}

func followTestUser(t *testing.T, db *gorm.DB, follower, followed string) {
	t.Helper()
	repo := NewFollowRepository(db)
	require.NoError(t, repo.Create(context.Background(), followEdge(follower, followed)))
}

func postIDs(list []*posts.Post) []string {
	out := make([]string, 0, len(list))
	for _, p := range list {
		out = append(out, p.ID)
	}
	return out
}

func strPtr(s string) *string {
	return &s
}
