// Package kafka publishes domain events to Kafka topics.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"Murmur/internal/core/events"

	kgo "github.com/segmentio/kafka-go"
)

// messageWriter is the subset of *kgo.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kgo.Message) error
	Close() error
}

// Topics routes event types to topics
type Topics struct {
	Posts  string
	Social string
}

// Publisher implements events.Publisher on a kafka-go writer. Events are keyed
// by subject id so every event about one post or account lands on one partition.
type Publisher struct {
	w      messageWriter
	topics Topics
}

// NewPublisher creates a publisher writing to brokers. Writes are synchronous
// and wait for the partition leader.
func NewPublisher(brokers []string, topics Topics) *Publisher {
	w := &kgo.Writer{
		Addr:                   kgo.TCP(brokers...),
		Balancer:               &kgo.Hash{},
		RequiredAcks:           kgo.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{w: w, topics: topics}
}

func (p *Publisher) topicFor(eventType string) string {
	switch {
	case strings.HasPrefix(eventType, "post."), strings.HasPrefix(eventType, "reaction."):
		return p.topics.Posts
	default:
		return p.topics.Social
	}
}

// Publish writes one event
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}
	msg := kgo.Message{
		Topic: p.topicFor(event.Type),
		Key:   []byte(event.SubjectID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kgo.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
