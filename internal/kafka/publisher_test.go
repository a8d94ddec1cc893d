package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"Murmur/internal/core/events"

	kgo "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	err    error
	msgs   []kgo.Message
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kgo.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_RoutesByEventType(t *testing.T) {
	w := &fakeWriter{}
	p := &Publisher{w: w, topics: Topics{Posts: "posts", Social: "social"}}
	ctx := context.Background()

	require.NoError(t, p.Publish(ctx, events.New(events.PostCreated, "post-1", "user-1", nil)))
	require.NoError(t, p.Publish(ctx, events.New(events.ReactionCreated, "post-1", "user-2", map[string]string{"type": "LIKE"})))
	require.NoError(t, p.Publish(ctx, events.New(events.FollowCreated, "user-3", "user-1", nil)))

	require.Len(t, w.msgs, 3)
	assert.Equal(t, "posts", w.msgs[0].Topic)
	assert.Equal(t, "posts", w.msgs[1].Topic)
	assert.Equal(t, "social", w.msgs[2].Topic)
	assert.Equal(t, []byte("post-1"), w.msgs[0].Key)
	assert.Equal(t, "event-type", w.msgs[1].Headers[0].Key)

	var decoded events.Event
	require.NoError(t, json.Unmarshal(w.msgs[1].Value, &decoded))
	assert.Equal(t, events.ReactionCreated, decoded.Type)
	assert.Equal(t, "LIKE", decoded.Attributes["type"])
}

func TestPublisher_WriteError(t *testing.T) {
	w := &fakeWriter{err: errors.New("broker down")}
	p := &Publisher{w: w, topics: Topics{Posts: "posts", Social: "social"}}

	err := p.Publish(context.Background(), events.New(events.PostDeleted, "post-1", "user-1", nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNewPublisher(t *testing.T) {
	p := NewPublisher([]string{"localhost:9092"}, Topics{Posts: "posts", Social: "social"})
	require.NotNil(t, p.w)
	assert.Equal(t, "social", p.topicFor(events.MessageSent))
}
