package routes

import (
	"Murmur/internal/api/handlers/message"
	"Murmur/internal/api/handlers/realtime"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/messages"

	"github.com/go-chi/chi/v5"
)

// RegisterMessageRoutes registers direct message endpoints under /api/message
func RegisterMessageRoutes(r chi.Router, service messages.Service, authMiddleware *middleware.JWTAuthMiddleware) {
	h := message.NewHandler(service)

	r.Route("/api/message", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		r.Get("/{userId}", h.HandleConversation)
		r.Post("/{userId}", h.HandleSend)
		r.Delete("/item/{messageId}", h.HandleDelete)
	})
}

// RegisterRealtimeRoutes registers the websocket endpoint. Browsers cannot set
// headers on websocket requests, so the token may also arrive as ?token=.
func RegisterRealtimeRoutes(r chi.Router, h *realtime.Handler, authMiddleware *middleware.JWTAuthMiddleware) {
	r.With(authMiddleware.RequireAuth).Get("/ws", h.HandleConnect)
}
