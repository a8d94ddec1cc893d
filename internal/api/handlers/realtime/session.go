package realtime

import (
	"sync"

	"Murmur/internal/core/messages"

	"github.com/google/uuid"
)

// sendBuffer is how many frames may queue for a session before it counts as slow
const sendBuffer = 64

// session is one websocket connection. The hub enqueues frames and the
// write pump drains them.
type session struct {
	send      chan messages.Frame
	done      chan struct{}
	id        string
	closeOnce sync.Once
}

func newSession() *session {
	return &session{
		id:   uuid.NewString(),
		send: make(chan messages.Frame, sendBuffer),
		done: make(chan struct{}),
	}
}

func (s *session) ID() string {
	return s.id
}

// Enqueue never blocks the caller, which is usually the hub's run loop
func (s *session) Enqueue(frame messages.Frame) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.send <- frame:
		return true
	default:
		return false
	}
}

func (s *session) close() {
	s.closeOnce.Do(func() { close(s.done) })
}
