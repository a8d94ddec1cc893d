package routes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"Murmur/internal/api/handlers/realtime"
	"Murmur/internal/api/middleware"
	"Murmur/internal/core/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}

func newRouter() chi.Router {
	authMiddleware := middleware.NewJWTAuthMiddleware(auth.NewTokenIssuer("test-secret", time.Hour))
	r := chi.NewRouter()
	RegisterHealthRoutes(r, fakePinger{})
	RegisterAuthRoutes(r, nil)
	RegisterUserRoutes(r, nil, authMiddleware)
	RegisterPostRoutes(r, nil, authMiddleware)
	RegisterFollowerRoutes(r, nil, authMiddleware)
	RegisterReactionRoutes(r, nil, authMiddleware)
	RegisterMessageRoutes(r, nil, authMiddleware)
	RegisterRealtimeRoutes(r, realtime.NewHandler(nil, nil, nil, nil), authMiddleware)
	return r
}

func TestRoutes_Registered(t *testing.T) {
	var got []string
	err := chi.Walk(newRouter(), func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		got = append(got, method+" "+route)
		return nil
	})
	require.NoError(t, err)
	sort.Strings(got)

	for _, want := range []string{
		"GET /health",
		"POST /api/auth/signup",
		"POST /api/auth/login",
		"GET /api/user/me",
		"GET /api/user/{userId}",
		"PATCH /api/user/visibility",
		"GET /api/post/",
		"POST /api/post/",
		"GET /api/post/{postId}/upload-targets",
		"POST /api/post/comment/finalize/{postId}",
		"GET /api/post/comments/user/{userId}",
		"POST /api/follower/follow/{userId}",
		"DELETE /api/reaction/{postId}",
		"GET /api/reaction/user/{userId}",
		"DELETE /api/message/item/{messageId}",
		"GET /ws",
	} {
		assert.Contains(t, got, want)
	}
}

func TestRoutes_ProtectedRoutesRequireToken(t *testing.T) {
	r := newRouter()
	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/post"},
		{http.MethodGet, "/api/user/me"},
		{http.MethodGet, "/api/follower/friends"},
		{http.MethodPost, "/api/reaction/p1?type=LIKE"},
		{http.MethodDelete, "/api/message/item/m1"},
		{http.MethodGet, "/ws"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

func TestHealth(t *testing.T) {
	w := httptest.NewRecorder()
	newRouter().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	r := chi.NewRouter()
	RegisterHealthRoutes(r, fakePinger{err: errors.New("connection refused")})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
