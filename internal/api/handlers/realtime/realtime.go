// Package realtime serves the websocket endpoint that carries direct
// messages and presence updates.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/messages"

	"github.com/gorilla/websocket"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 60 * time.Second
	pingPeriod   = 30 * time.Second
	maxFrameSize = 8 * 1024
)

// Registry tracks which sessions are live for an account
type Registry interface {
	Register(ctx context.Context, accountID string, s messages.Session) error
	Unregister(ctx context.Context, accountID string, s messages.Session) error
}

// SessionMetrics receives session lifecycle and delivery counts
type SessionMetrics interface {
	SessionOpened()
	SessionClosed()
	FrameDelivered(frameType string)
}

// Handler upgrades authenticated requests to websocket sessions
type Handler struct {
	service  messages.Service
	registry Registry
	metrics  SessionMetrics
	upgrader websocket.Upgrader
}

// NewHandler creates a realtime handler. allowedOrigins lists the browser
// origins permitted to connect; "*" allows any.
func NewHandler(service messages.Service, registry Registry, metrics SessionMetrics, allowedOrigins []string) *Handler {
	return &Handler{
		service:  service,
		registry: registry,
		metrics:  metrics,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			// Non-browser clients do not send an origin
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// HandleConnect handles GET /ws
func (h *Handler) HandleConnect(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		log.Printf("WebSocket upgrade failed for user %s: %v", userID, err)
		return
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Printf("Failed to close WebSocket connection: %v", closeErr)
		}
	}()

	ctx := r.Context()
	sess := newSession()
	defer sess.close()

	// Queued ahead of registration so it is the first frame the client sees
	sess.Enqueue(messages.Frame{Type: messages.FrameConnected, UserID: userID})
	if err := h.registry.Register(ctx, userID, sess); err != nil {
		log.Printf("Failed to register session for user %s: %v", userID, err)
		return
	}
	h.metrics.SessionOpened()
	defer func() {
		h.metrics.SessionClosed()
		if err := h.registry.Unregister(context.WithoutCancel(ctx), userID, sess); err != nil {
			log.Printf("Failed to unregister session for user %s: %v", userID, err)
		}
	}()

	go h.writePump(conn, sess)
	h.readPump(ctx, conn, sess, userID)
}

// readPump handles inbound frames until the client goes away
func (h *Handler) readPump(ctx context.Context, conn *websocket.Conn, sess *session, userID string) {
	conn.SetReadLimit(maxFrameSize)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Printf("Failed to set read deadline: %v", err)
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in messages.InboundFrame
		if err := conn.ReadJSON(&in); err != nil {
			if isDecodeError(err) {
				sess.Enqueue(messages.Frame{Type: messages.FrameError, Error: "malformed frame"})
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error for user %s: %v", userID, err)
			}
			return
		}
		sess.Enqueue(h.handleInbound(ctx, userID, sess.ID(), in))
	}
}

// handleInbound turns one client frame into the reply for the same session
func (h *Handler) handleInbound(ctx context.Context, userID, sessionID string, in messages.InboundFrame) messages.Frame {
	if in.Type != messages.FramePrivateMessage {
		return messages.Frame{Type: messages.FrameError, Error: "unsupported frame type"}
	}

	msg, err := h.service.Send(ctx, userID, in.To, in.Message, sessionID)
	switch {
	case err == nil:
		return messages.Frame{Type: messages.FrameMessageSaved, Message: msg}
	case errors.Is(err, messages.ErrNotFriends):
		return messages.Frame{Type: messages.FrameNotFriends, UserID: in.To}
	case errors.Is(err, messages.ErrInvalidContent), errors.Is(err, messages.ErrSelfMessage):
		return messages.Frame{Type: messages.FrameError, Error: err.Error()}
	default:
		log.Printf("Failed to send message from %s: %v", userID, err)
		return messages.Frame{Type: messages.FrameError, Error: "failed to send message"}
	}
}

// isDecodeError reports a frame that arrived intact but is not valid JSON
// for an inbound frame. The connection stays usable after these.
func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// writePump is the only writer on conn
func (h *Handler) writePump(conn *websocket.Conn, sess *session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case frame := <-sess.send:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Printf("Failed to set write deadline: %v", err)
			}
			if err := conn.WriteJSON(frame); err != nil {
				sess.close()
				return
			}
			h.metrics.FrameDelivered(frame.Type)
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(writeWait)); err != nil {
				sess.close()
				return
			}
		case <-sess.done:
			return
		}
	}
}
