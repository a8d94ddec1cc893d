package routes

import (
	"Murmur/internal/api/handlers/auth"
	coreauth "Murmur/internal/core/auth"

	"github.com/go-chi/chi/v5"
)

// RegisterAuthRoutes registers signup and login. Both are public.
func RegisterAuthRoutes(r chi.Router, service coreauth.Service) {
	h := auth.NewHandler(service)

	r.Post("/api/auth/signup", h.HandleSignup)
	r.Post("/api/auth/login", h.HandleLogin)
}
