package post

import (
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/api/middleware"

	"github.com/go-chi/chi/v5"
)

// HandleGetPost handles GET /api/post/{postId}
func (h *Handler) HandleGetPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.service.GetPost(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "postId"))
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, post)
}

// HandleListFeed handles GET /api/post?limit=&before=&after=
func (h *Handler) HandleListFeed(w http.ResponseWriter, r *http.Request) {
	window, err := handlers.ParseWindow(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.ListFeed(r.Context(), middleware.GetUserID(r), window)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, listResponse(found))
}

// HandleListComments handles GET /api/post/comment/{postId}
// Comments are returned ranked by engagement.
func (h *Handler) HandleListComments(w http.ResponseWriter, r *http.Request) {
	window, err := handlers.ParseWindow(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.ListComments(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "postId"), window)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, listResponse(found))
}

// HandleListByAuthor handles GET /api/post/by_user/{userId}
func (h *Handler) HandleListByAuthor(w http.ResponseWriter, r *http.Request) {
	window, err := handlers.ParseWindow(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.ListByAuthor(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "userId"), window)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, listResponse(found))
}

// HandleListCommentsByAuthor handles GET /api/post/comments/user/{userId}
func (h *Handler) HandleListCommentsByAuthor(w http.ResponseWriter, r *http.Request) {
	window, err := handlers.ParseWindow(r)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}

	found, err := h.service.ListCommentsByAuthor(r.Context(), middleware.GetUserID(r), chi.URLParam(r, "userId"), window)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, listResponse(found))
}
