package reaction

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"

	"github.com/go-chi/chi/v5"
)

// Handler serves like and retweet endpoints
type Handler struct {
	service reactions.Service
}

// NewHandler creates a new reaction handler
func NewHandler(service reactions.Service) *Handler {
	return &Handler{service: service}
}

// ReactedPostsResponse lists posts a user reacted to, newest reaction first
type ReactedPostsResponse struct {
	Posts []*posts.ExtendedPost `json:"posts"`
}

// HandleReact handles POST /api/reaction/{postId}?type=LIKE|RETWEET
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}
	reactionType, err := reactions.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	reaction, err := h.service.React(r.Context(), userID, chi.URLParam(r, "postId"), reactionType)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, reaction)
}

// HandleUnreact handles DELETE /api/reaction/{postId}?type=LIKE|RETWEET
func (h *Handler) HandleUnreact(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}
	reactionType, err := reactions.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	if err := h.service.Unreact(r.Context(), userID, chi.URLParam(r, "postId"), reactionType); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleListByUser handles GET /api/reaction/user/{userId}?type=LIKE|RETWEET
func (h *Handler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	reactionType, err := reactions.ParseType(r.URL.Query().Get("type"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.ListReactedPosts(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "userId"), reactionType)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	if found == nil {
		found = []*posts.ExtendedPost{}
	}
	handlers.WriteJSON(w, http.StatusOK, ReactedPostsResponse{Posts: found})
}
