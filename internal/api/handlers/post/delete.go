package post

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// HandleDelete handles DELETE /api/post/{postId}
// Only post authors can delete their own posts.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeletePost(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "postId")); err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
