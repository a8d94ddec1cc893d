package message

import (
	"encoding/json"
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/messages"

	"github.com/go-chi/chi/v5"
)

const maxMessageBody = 16 * 1024

// Handler serves direct message endpoints
type Handler struct {
	service messages.Service
}

// NewHandler creates a new message handler
func NewHandler(service messages.Service) *Handler {
	return &Handler{service: service}
}

// ConversationResponse is one page of a conversation, newest first
type ConversationResponse struct {
	Messages []*messages.Message `json:"messages"`
}

// SendRequest is the body of POST /api/message/{userId}
type SendRequest struct {
	Message string `json:"message"`
}

// HandleConversation handles GET /api/message/{userId}?limit=&skip=
func (h *Handler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}
	page, err := handlers.ParsePage(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.Conversation(r.Context(), userID, chi.URLParam(r, "userId"), page)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	if found == nil {
		found = []*messages.Message{}
	}
	handlers.WriteJSON(w, http.StatusOK, ConversationResponse{Messages: found})
}

// HandleSend handles POST /api/message/{userId}. The message is stored and
// pushed to every live session of both participants.
func (h *Handler) HandleSend(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	var req SendRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxMessageBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	msg, err := h.service.Send(r.Context(), userID, chi.URLParam(r, "userId"), req.Message, "")
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, msg)
}

// HandleDelete handles DELETE /api/message/item/{messageId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.DeleteMessage(r.Context(), userID, chi.URLParam(r, "messageId")); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
