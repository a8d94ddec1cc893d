package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_BurstThenThrottle(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// A different client has its own bucket
	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	req.RemoteAddr = "10.0.0.2:5555"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_KeysByUserID(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	handler := rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		req = req.WithContext(SetTestUserID(req.Context(), userID))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"), "users behind one IP are limited separately")
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
}

// Mirrors the router order: Identify, then the limiter, then route level auth
func TestRateLimiter_KeysByTokenBehindIdentify(t *testing.T) {
	m, issuer := newTestMiddleware(t)
	rl := NewRateLimiter(0.001, 1)
	handler := m.Identify(rl.Middleware(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))))

	send := func(userID string) int {
		req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
		req.RemoteAddr = "10.0.0.1:5555"
		if userID != "" {
			token, err := issuer.Issue(userID)
			require.NoError(t, err)
			req.Header.Set("Authorization", "Bearer "+token)
		}
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, send("alice"))
	assert.Equal(t, http.StatusOK, send("bob"), "users behind one IP are limited separately")
	assert.Equal(t, http.StatusUnauthorized, send(""), "anonymous client has its own IP bucket")
	assert.Equal(t, http.StatusTooManyRequests, send("alice"))
	assert.Equal(t, http.StatusTooManyRequests, send(""))
}

func TestGetClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", getClientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.7")
	assert.Equal(t, "198.51.100.7", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", getClientIP(req))
}
