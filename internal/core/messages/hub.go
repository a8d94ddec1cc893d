package messages

import (
	"context"
	"errors"
	"log/slog"
	"sort"
)

// ErrHubStopped is returned when the hub's run loop has exited
var ErrHubStopped = errors.New("session hub stopped")

// Session is one live realtime connection of an account
type Session interface {
	ID() string

	// Enqueue hands a frame to the session without blocking. It returns false
	// when the session cannot accept more frames.
	Enqueue(frame Frame) bool
}

type registration struct {
	session   Session
	accountID string
}

// Hub owns the registry of live sessions. Only the Run goroutine touches the
// map; everything else talks to it over channels.
type Hub struct {
	register   chan registration
	unregister chan registration
	deliveries chan Delivery
	queries    chan chan []string
	done       chan struct{}
	sessions   map[string]map[string]Session
}

// NewHub creates a hub. Call Run to start it.
func NewHub() *Hub {
	return &Hub{
		register:   make(chan registration),
		unregister: make(chan registration),
		deliveries: make(chan Delivery, 256),
		queries:    make(chan chan []string),
		done:       make(chan struct{}),
		sessions:   make(map[string]map[string]Session),
	}
}

// Run processes registry operations until ctx is cancelled
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			return

		case r := <-h.register:
			set, ok := h.sessions[r.accountID]
			if !ok {
				set = make(map[string]Session)
				h.sessions[r.accountID] = set
			}
			set[r.session.ID()] = r.session
			if !ok {
				h.broadcastPresence()
			}

		case r := <-h.unregister:
			set, ok := h.sessions[r.accountID]
			if !ok {
				continue
			}
			delete(set, r.session.ID())
			if len(set) == 0 {
				delete(h.sessions, r.accountID)
				h.broadcastPresence()
			}

		case d := <-h.deliveries:
			h.deliver(d)

		case reply := <-h.queries:
			reply <- h.online()
		}
	}
}

// Register adds a session for accountID
func (h *Hub) Register(ctx context.Context, accountID string, s Session) error {
	return h.send(ctx, h.register, registration{accountID: accountID, session: s})
}

// Unregister removes a session for accountID
func (h *Hub) Unregister(ctx context.Context, accountID string, s Session) error {
	return h.send(ctx, h.unregister, registration{accountID: accountID, session: s})
}

// Dispatch queues a delivery for the local sessions of d.AccountID
func (h *Hub) Dispatch(ctx context.Context, d Delivery) error {
	select {
	case h.deliveries <- d:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Online returns the sorted ids of accounts with at least one live session
func (h *Hub) Online(ctx context.Context) ([]string, error) {
	reply := make(chan []string, 1)
	select {
	case h.queries <- reply:
	case <-h.done:
		return nil, ErrHubStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return <-reply, nil
}

func (h *Hub) send(ctx context.Context, ch chan registration, r registration) error {
	select {
	case ch <- r:
		return nil
	case <-h.done:
		return ErrHubStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) deliver(d Delivery) {
	for id, s := range h.sessions[d.AccountID] {
		if id == d.ExceptSession {
			continue
		}
		if !s.Enqueue(d.Frame) {
			slog.Warn("dropping frame for slow session", "account_id", d.AccountID, "session_id", id, "type", d.Frame.Type)
		}
	}
}

func (h *Hub) broadcastPresence() {
	frame := Frame{Type: FrameUserList, Users: h.online()}
	for _, set := range h.sessions {
		for _, s := range set {
			s.Enqueue(frame)
		}
	}
}

func (h *Hub) online() []string {
	ids := make([]string, 0, len(h.sessions))
	for id := range h.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
