package post

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// HandleFinalize handles POST /api/post/finalize/{postId} and
// POST /api/post/comment/finalize/{postId}. The client calls it once every
// image has been uploaded.
func (h *Handler) HandleFinalize(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.FinalizePost(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "postId"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandleUploadTargets handles GET /api/post/{postId}/upload-targets, issuing
// fresh upload URLs for a post that is still pending
func (h *Handler) HandleUploadTargets(w http.ResponseWriter, r *http.Request) {
	pending, err := h.service.RequestUploadTargets(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "postId"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, pending)
}
