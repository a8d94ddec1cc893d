package routes

import (
	"Murmur/internal/api/handlers/post"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/posts"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post and comment endpoints under /api/post.
// Reads run with optional auth so anonymous viewers see public authors only.
func RegisterPostRoutes(r chi.Router, service posts.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	h := post.NewHandler(service)

	r.Route("/api/post", func(r chi.Router) {
		r.With(authMiddleware.OptionalAuth).Get("/", h.HandleListFeed)
		r.With(authMiddleware.RequireAuth).Post("/", h.HandleCreatePost)

		r.With(authMiddleware.OptionalAuth).Get("/{postId}", h.HandleGetPost)
		r.With(authMiddleware.RequireAuth).Delete("/{postId}", h.HandleDelete)
		r.With(authMiddleware.RequireAuth).Get("/{postId}/upload-targets", h.HandleUploadTargets)
		r.With(authMiddleware.RequireAuth).Post("/finalize/{postId}", h.HandleFinalize)
		r.With(authMiddleware.OptionalAuth).Get("/by_user/{userId}", h.HandleListByAuthor)

		// Comments are posts with a parent
		r.With(authMiddleware.OptionalAuth).Get("/comment/{postId}", h.HandleListComments)
		r.With(authMiddleware.RequireAuth).Post("/comment/{postId}", h.HandleCreateComment)
		r.With(authMiddleware.RequireAuth).Post("/comment/finalize/{postId}", h.HandleFinalize)
		r.With(authMiddleware.OptionalAuth).Get("/comments/user/{userId}", h.HandleListCommentsByAuthor)
	})
}
