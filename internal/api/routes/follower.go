package routes

import (
	"Murmur/internal/api/handlers/follower"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/follows"

	"github.com/go-chi/chi/v5"
)

// RegisterFollowerRoutes registers follow graph endpoints. All require auth.
func RegisterFollowerRoutes(r chi.Router, service follows.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	h := follower.NewHandler(service)

	r.Route("/api/follower", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Post("/follow/{userId}", h.HandleFollow)
		r.Delete("/unfollow/{userId}", h.HandleUnfollow)
		r.Get("/friends", h.HandleFriends)
	})
}
