package routes

import (
	"Murmur/internal/api/handlers/reaction"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/reactions"

	"github.com/go-chi/chi/v5"
)

// RegisterReactionRoutes registers like and retweet endpoints under /api/reaction
func RegisterReactionRoutes(r chi.Router, service reactions.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	h := reaction.NewHandler(service)

	r.Route("/api/reaction", func(r chi.Router) {
		r.With(authMiddleware.RequireAuth).Post("/{postId}", h.HandleReact)
		r.With(authMiddleware.RequireAuth).Delete("/{postId}", h.HandleUnreact)
		r.With(authMiddleware.OptionalAuth).Get("/user/{userId}", h.HandleListByUser)
	})
}
