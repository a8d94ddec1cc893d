package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
)

// Context keys for storing user information
type contextKey string

const (
	UserIDKey contextKey = "user_id"
)

// TokenVerifier resolves a bearer token to the account id it was issued for
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// JWTAuthMiddleware enforces bearer token authentication for protected routes
type JWTAuthMiddleware struct {
	verifier TokenVerifier
}

// NewJWTAuthMiddleware creates a new auth middleware
func NewJWTAuthMiddleware(verifier TokenVerifier) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{verifier: verifier}
}

// RequireAuth ensures the request carries a valid token.
// If not authenticated, returns 401. Otherwise injects the user id into the context.
func (m *JWTAuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUserID(r) != "" {
			next.ServeHTTP(w, r)
			return
		}

		token := extractToken(r)
		if token == "" {
			writeAuthError(w, "Missing Authorization header")
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			log.Printf("[AUTH_FAILURE] type=verification_failed ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuth loads the user id if a valid token is present, but doesn't require it.
// Used by read endpoints that also serve anonymous viewers.
func (m *JWTAuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" || GetUserID(r) != "" {
			next.ServeHTTP(w, r)
			return
		}

		userID, err := m.verifier.Verify(token)
		if err != nil {
			// Invalid token - continue without user context
			log.Printf("Optional auth failed: %v", err)
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identify attaches the user id of a valid token and never rejects. It runs
// router-wide ahead of the rate limiter so authenticated clients get their own
// bucket; RequireAuth and OptionalAuth reuse the id instead of verifying again.
func (m *JWTAuthMiddleware) Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := m.verifier.Verify(token)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), UserIDKey, userID)))
	})
}

// extractToken reads the bearer token. Browsers cannot set headers on a
// websocket handshake, so upgrade requests may pass it as ?token= instead.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return r.URL.Query().Get("token")
	}
	return ""
}

// GetUserID extracts the authenticated user's id from the request context
// Returns empty string if not authenticated
func GetUserID(r *http.Request) string {
	return GetAuthenticatedUserID(r.Context())
}

// GetAuthenticatedUserID extracts the authenticated user's id from a context
func GetAuthenticatedUserID(ctx context.Context) string {
	id, _ := ctx.Value(UserIDKey).(string)
	return id
}

// SetTestUserID sets the user id in the context for testing purposes
// This function should ONLY be used in tests to mock authenticated users
func SetTestUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// writeAuthError writes a JSON error response for authentication failures
func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	response := `{"error":"AuthenticationRequired","message":"` + message + `"}`
	if _, err := w.Write([]byte(response)); err != nil {
		log.Printf("Failed to write auth error response: %v", err)
	}
}
