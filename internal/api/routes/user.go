package routes

import (
	"Murmur/internal/api/handlers/user"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/users"

	"github.com/go-chi/chi/v5"
)

// RegisterUserRoutes registers account endpoints under /api/user
func RegisterUserRoutes(r chi.Router, service users.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	h := user.NewHandler(service)

	r.Route("/api/user", func(r chi.Router) {
		r.With(authMiddleware.RequireAuth).Get("/me", h.HandleGetMe)
		r.With(authMiddleware.OptionalAuth).Get("/search", h.HandleSearch)
		r.With(authMiddleware.RequireAuth).Get("/recommendations", h.HandleRecommendations)
		r.With(authMiddleware.RequireAuth).Patch("/visibility", h.HandleSetVisibility)
		r.With(authMiddleware.RequireAuth).Post("/profile-image", h.HandleProfileImage)
		r.With(authMiddleware.RequireAuth).Delete("/", h.HandleDelete)
		r.With(authMiddleware.OptionalAuth).Get("/{userId}", h.HandleGetUser)
	})
}
