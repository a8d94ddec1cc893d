package user

import (
	"encoding/json"
	"net/http"
	"strings"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// Handler serves account endpoints
type Handler struct {
	service users.Service
}

// NewHandler creates a new user handler
func NewHandler(service users.Service) *Handler {
	return &Handler{service: service}
}

// HandleGetMe handles GET /api/user/me
func (h *Handler) HandleGetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r)
	if userID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return
	}
	h.writeUser(w, r, userID, userID)
}

// HandleGetUser handles GET /api/user/{userId}
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	h.writeUser(w, r, middleware.GetUserID(r), chi.URLParam(r, "userId"))
}

func (h *Handler) writeUser(w http.ResponseWriter, r *http.Request, viewerID, userID string) {
	view, err := h.service.GetUser(r.Context(), viewerID, userID)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, view)
}

// HandleSearch handles GET /api/user/search?username=&limit=&skip=
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	term := strings.TrimSpace(r.URL.Query().Get("username"))
	if term == "" {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "username is required")
		return
	}
	page, err := handlers.ParsePage(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.SearchByUsername(r.Context(), term, page)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, found)
}

// HandleRecommendations handles GET /api/user/recommendations?limit=&skip=
func (h *Handler) HandleRecommendations(w http.ResponseWriter, r *http.Request) {
	page, err := handlers.ParsePage(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	recs, err := h.service.Recommendations(r.Context(), middleware.GetUserID(r), page)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, recs)
}

// SetVisibilityInput is the body of PATCH /api/user/visibility
type SetVisibilityInput struct {
	IsPublic *bool `json:"isPublic"`
}

// HandleSetVisibility handles PATCH /api/user/visibility
func (h *Handler) HandleSetVisibility(w http.ResponseWriter, r *http.Request) {
	var in SetVisibilityInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4*1024)).Decode(&in); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}
	if in.IsPublic == nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "isPublic is required")
		return
	}

	userID := middleware.GetUserID(r)
	if err := h.service.SetVisibility(r.Context(), userID, *in.IsPublic); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]bool{"isPublic": *in.IsPublic})
}

// HandleDelete handles DELETE /api/user
// Users can only delete their own account; the id comes from the token.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteUser(r.Context(), middleware.GetUserID(r)); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleProfileImage handles POST /api/user/profile-image and returns a
// presigned upload URL for the caller's profile picture
func (h *Handler) HandleProfileImage(w http.ResponseWriter, r *http.Request) {
	url, err := h.service.CreateProfileImageUpload(r.Context(), middleware.GetUserID(r))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, map[string]string{"uploadUrl": url})
}
