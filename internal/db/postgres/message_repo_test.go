package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"Murmur/internal/core/messages"
	"Murmur/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageRepo_Conversation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	send := func(id, from, to string, minute int) {
		require.NoError(t, repo.Create(ctx, &messages.Message{
			ID:         id,
			SenderID:   from,
			ReceiverID: to,
			Content:    fmt.Sprintf("hello from %s", from),
			CreatedAt:  baseTime.Add(time.Duration(minute) * time.Minute),
		}))
	}
	send("m1", "a", "b", 1)
	send("m2", "b", "a", 2)
	send("m3", "a", "c", 3)
	send("m4", "a", "b", 4)

	conv, err := repo.Conversation(ctx, "a", "b", users.Page{Limit: 10})
	require.NoError(t, err)
	require.Len(t, conv, 3)
	assert.Equal(t, "m4", conv[0].ID)
	assert.Equal(t, "m2", conv[1].ID)
	assert.Equal(t, "m1", conv[2].ID)

	// Either side sees the same thread
	reverse, err := repo.Conversation(ctx, "b", "a", users.Page{Limit: 2, Skip: 1})
	require.NoError(t, err)
	require.Len(t, reverse, 2)
	assert.Equal(t, "m2", reverse[0].ID)
}

func TestMessageRepo_GetAndDelete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewMessageRepository(db)
	ctx := context.Background()

	msg := &messages.Message{ID: "m", SenderID: "a", ReceiverID: "b", Content: "hi", CreatedAt: baseTime}
	require.NoError(t, repo.Create(ctx, msg))

	got, err := repo.GetByID(ctx, "m")
	require.NoError(t, err)
	assert.Equal(t, "hi", got.Content)

	require.NoError(t, repo.Delete(ctx, "m"))
	_, err = repo.GetByID(ctx, "m")
	assert.ErrorIs(t, err, messages.ErrMessageNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, "m"), messages.ErrMessageNotFound)
}
