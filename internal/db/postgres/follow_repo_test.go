package postgres

import (
	"context"
	"testing"

	"Murmur/internal/core/follows"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func followEdge(follower, followed string) *follows.Follow {
	return &follows.Follow{FollowerID: follower, FollowedID: followed, CreatedAt: baseTime}
}

func TestFollowRepo_CreateDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewFollowRepository(db)

	require.NoError(t, repo.Create(ctx, followEdge("a", "b")))
	err := repo.Create(ctx, followEdge("a", "b"))
	assert.ErrorIs(t, err, follows.ErrAlreadyFollowing)

	// The reverse direction is a separate edge
	require.NoError(t, repo.Create(ctx, followEdge("b", "a")))
}

func TestFollowRepo_RemoveAndReactivate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewFollowRepository(db)

	require.NoError(t, repo.Create(ctx, followEdge("a", "b")))
	require.NoError(t, repo.Remove(ctx, "a", "b"))

	following, err := repo.IsFollowing(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, following)

	edge, err := repo.Get(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, edge.Active())
	require.NotNil(t, edge.RemovedAt)

	assert.ErrorIs(t, repo.Remove(ctx, "a", "b"), follows.ErrNotFollowing)

	// A removed edge blocks re-insertion; it has to be reactivated
	assert.ErrorIs(t, repo.Create(ctx, followEdge("a", "b")), follows.ErrAlreadyFollowing)
	require.NoError(t, repo.Reactivate(ctx, "a", "b"))
	assert.ErrorIs(t, repo.Reactivate(ctx, "a", "b"), follows.ErrAlreadyFollowing)

	following, err = repo.IsFollowing(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, following)

	var rows int64
	require.NoError(t, db.Unscoped().Model(&followRow{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows, "reactivation must reuse the existing row")
}

func TestFollowRepo_GetNeverFollowed(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewFollowRepository(db).Get(context.Background(), "a", "b")
	assert.ErrorIs(t, err, follows.ErrFollowNotFound)
}

func TestFollowRepo_FollowedIDsAndFriends(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	repo := NewFollowRepository(db)

	for _, id := range []string{"a", "b", "c", "d"} {
		createTestUser(t, db, id, false)
	}
	followTestUser(t, db, "a", "b")
	followTestUser(t, db, "b", "a")
	followTestUser(t, db, "a", "c")
	followTestUser(t, db, "d", "a")
	followTestUser(t, db, "a", "d")
	require.NoError(t, repo.Remove(ctx, "d", "a"))

	followed, err := repo.FollowedIDs(ctx, "a")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"b", "c", "d"}, followed)

	friends, err := repo.Friends(ctx, "a")
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "b", friends[0].ID)
}
