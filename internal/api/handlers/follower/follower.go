package follower

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// Handler serves follow graph endpoints
type Handler struct {
	service follows.Service
}

// NewHandler creates a new follower handler
func NewHandler(service follows.Service) *Handler {
	return &Handler{service: service}
}

// FriendsResponse lists accounts that follow the viewer back
type FriendsResponse struct {
	Friends []users.UserView `json:"friends"`
}

// HandleFollow handles POST /api/follower/follow/{userId}
func (h *Handler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	followerID := middleware.GetUserID(r)
	if followerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.Follow(r.Context(), followerID, chi.URLParam(r, "userId")); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleUnfollow handles DELETE /api/follower/unfollow/{userId}
func (h *Handler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	followerID := middleware.GetUserID(r)
	if followerID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	if err := h.service.Unfollow(r.Context(), followerID, chi.URLParam(r, "userId")); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleFriends handles GET /api/follower/friends
func (h *Handler) HandleFriends(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}

	friends, err := h.service.Friends(r.Context(), userID)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	if friends == nil {
		friends = []users.UserView{}
	}
	handlers.WriteJSON(w, http.StatusOK, FriendsResponse{Friends: friends})
}
