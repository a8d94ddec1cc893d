package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"Murmur/internal/core/auth"
)

func newTestMiddleware(t *testing.T) (*JWTAuthMiddleware, *auth.TokenIssuer) {
	t.Helper()
	issuer := auth.NewTokenIssuer("test-secret", time.Hour)
	return NewJWTAuthMiddleware(issuer), issuer
}

// TestRequireAuth_ValidToken tests that valid tokens are accepted
func TestRequireAuth_ValidToken(t *testing.T) {
	m, issuer := newTestMiddleware(t)
	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	handlerCalled := false
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		if id := GetUserID(r); id != "user-123" {
			t.Errorf("expected user id 'user-123', got %s", id)
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if !handlerCalled {
		t.Error("handler was not called")
	}
	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
}

// TestRequireAuth_Rejected tests missing, malformed and foreign tokens
func TestRequireAuth_Rejected(t *testing.T) {
	m, _ := newTestMiddleware(t)
	foreign, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue("user-123")
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	tests := map[string]string{
		"missing header":  "",
		"not bearer":      "Basic dXNlcjpwYXNz",
		"garbage token":   "Bearer not-a-jwt",
		"wrong signature": "Bearer " + foreign,
	}
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be called")
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected status 401, got %d", w.Code)
			}
		})
	}
}

// TestRequireAuth_QueryTokenOnlyForWebsocket tests the ?token= fallback
func TestRequireAuth_QueryTokenOnlyForWebsocket(t *testing.T) {
	m, issuer := newTestMiddleware(t)
	token, _ := issuer.Issue("user-123")

	var seen string
	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetUserID(r)
	}))

	plain := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, plain)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 without upgrade, got %d", w.Code)
	}

	upgrade := httptest.NewRequest(http.MethodGet, "/ws?token="+token, nil)
	upgrade.Header.Set("Upgrade", "websocket")
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, upgrade)
	if seen != "user-123" {
		t.Errorf("expected user id from query token, got %q", seen)
	}
}

// TestOptionalAuth tests that anonymous and invalid requests pass through
func TestOptionalAuth(t *testing.T) {
	m, issuer := newTestMiddleware(t)
	token, _ := issuer.Issue("user-123")

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "anonymous", header: "", want: ""},
		{name: "invalid token", header: "Bearer broken", want: ""},
		{name: "valid token", header: "Bearer " + token, want: "user-123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := m.OptionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				if got := GetUserID(r); got != tt.want {
					t.Errorf("expected user id %q, got %q", tt.want, got)
				}
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			if !called {
				t.Error("handler was not called")
			}
		})
	}
}

// TestIdentify tests that Identify never rejects and that RequireAuth still
// rejects a request Identify could not authenticate
func TestIdentify(t *testing.T) {
	m, issuer := newTestMiddleware(t)
	token, _ := issuer.Issue("user-123")

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "anonymous", header: "", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer broken", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + token, wantStatus: http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			reached := false
			inner := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if got := GetUserID(r); got != "user-123" {
					t.Errorf("expected user id 'user-123', got %q", got)
				}
			}))
			handler := m.Identify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				seen = GetUserID(r)
				inner.ServeHTTP(w, r)
			}))

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			if !reached {
				t.Fatal("Identify rejected the request")
			}
			if tt.wantStatus == http.StatusOK && seen != "user-123" {
				t.Errorf("expected Identify to attach user-123, got %q", seen)
			}
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestSetTestUserID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTestUserID(req.Context(), "user-9"))
	if got := GetUserID(req); got != "user-9" {
		t.Errorf("expected user-9, got %s", got)
	}
}
