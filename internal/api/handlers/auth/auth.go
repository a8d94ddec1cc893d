package auth

import (
	"encoding/json"
	"net/http"

	"Murmur/internal/api/handlers"
	"Murmur/internal/core/auth"
)

// Handler serves signup and login
type Handler struct {
	service auth.Service
}

// NewHandler creates a new auth handler
func NewHandler(service auth.Service) *Handler {
	return &Handler{service: service}
}

// HandleSignup handles POST /api/auth/signup
//
// Request body: { "name": "...", "username": "...", "email": "...", "password": "..." }
func (h *Handler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req auth.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	resp, err := h.service.Signup(r.Context(), req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusCreated, resp)
}

// HandleLogin handles POST /api/auth/login
//
// Request body: { "email": "..." | "username": "...", "password": "..." }
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024)

	var req auth.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteError(w, http.StatusBadRequest, "InvalidRequest", "Invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		handlers.HandleServiceError(w, err)
		return
	}
	handlers.WriteJSON(w, http.StatusOK, resp)
}
