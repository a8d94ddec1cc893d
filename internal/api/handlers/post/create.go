package post

import (
	"encoding/json"
	"errors"
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// maxCreateBody bounds a create request: 240 characters of content plus up to
// four image names
const maxCreateBody = 16 * 1024

// HandleCreatePost handles POST /api/post
//
// Request body: { "content": "...", "images": ["a.png", ...] }
// Responds 201 with { "kind": "post", "post": {...} } or
// { "kind": "pending", "pending": { "id": "...", "uploadTargets": [...] } }
func (h *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCreate(w, r)
	if !ok {
		return
	}

	result, err := h.service.CreatePost(r.Context(), req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, result)
}

// HandleCreateComment handles POST /api/post/comment/{postId}
func (h *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeCreate(w, r)
	if !ok {
		return
	}
	parentID := chi.URLParam(r, "postId")
	req.ParentID = &parentID

	result, err := h.service.CreateComment(r.Context(), req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, result)
}

func decodeCreate(w http.ResponseWriter, r *http.Request) (posts.CreatePostRequest, bool) {
	var req posts.CreatePostRequest

	r.Body = http.MaxBytesReader(w, r.Body, maxCreateBody)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, "RequestTooLarge", "Request body too large")
			return req, false
		}
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return req, false
	}

	// Author always comes from the authenticated user, never the body
	req.AuthorID = middleware.GetUserID(r)
	if req.AuthorID == "" {
		handlers.WriteError(w, http.StatusUnauthorized, "AuthRequired", "Authentication required")
		return req, false
	}
	return req, true
}
