// Package events defines the domain events emitted after successful writes.
package events

import (
	"context"
	"log/slog"
	"time"
)

// Event types
const (
	PostCreated     = "post.created"
	PostFinalized   = "post.finalized"
	PostDeleted     = "post.deleted"
	ReactionCreated = "reaction.created"
	FollowCreated   = "follow.created"
	MessageSent     = "message.sent"
)

// Event is a domain fact published after the store write it describes succeeded
type Event struct {
	OccurredAt time.Time         `json:"occurredAt"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Type       string            `json:"type"`
	SubjectID  string            `json:"subjectId"`
	ActorID    string            `json:"actorId"`
}

// New builds an event stamped with the current time
func New(eventType, subjectID, actorID string, attrs map[string]string) Event {
	return Event{
		Type:       eventType,
		SubjectID:  subjectID,
		ActorID:    actorID,
		Attributes: attrs,
		OccurredAt: time.Now().UTC(),
	}
}

// Publisher delivers events to downstream consumers
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event Event) error { return nil }

// Emit publishes event and logs failures. Domain writes never fail because
// an event could not be delivered.
func Emit(ctx context.Context, p Publisher, event Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		slog.Warn("failed to publish event",
			"type", event.Type, "subject_id", event.SubjectID, "error", err)
	}
}
