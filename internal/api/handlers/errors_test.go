package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"Murmur/internal/core/auth"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/messages"
	"Murmur/internal/core/posts"
	"Murmur/internal/core/reactions"
	"Murmur/internal/core/users"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		err       error
		name      string
		errorType string
		status    int
	}{
		{name: "post validation", err: posts.NewValidationError("content", "too long"), status: http.StatusBadRequest, errorType: "InvalidRequest"},
		{name: "user validation", err: users.NewValidationError("email", "malformed"), status: http.StatusBadRequest, errorType: "InvalidRequest"},
		{name: "invalid cursor", err: posts.ErrInvalidCursor, status: http.StatusBadRequest, errorType: "InvalidCursor"},
		{name: "self follow", err: follows.ErrSelfFollow, status: http.StatusBadRequest, errorType: "InvalidRequest"},
		{name: "bad reaction type", err: reactions.ErrInvalidType, status: http.StatusBadRequest, errorType: "InvalidRequest"},
		{name: "bad credentials", err: auth.ErrInvalidCredentials, status: http.StatusUnauthorized, errorType: "InvalidCredentials"},
		{name: "post not found", err: posts.ErrPostNotFound, status: http.StatusNotFound, errorType: "NotFound"},
		{name: "wrapped author not found", err: fmt.Errorf("listing: %w", posts.ErrAuthorNotFound), status: http.StatusNotFound, errorType: "NotFound"},
		{name: "user not found", err: users.ErrUserNotFound, status: http.StatusNotFound, errorType: "UserNotFound"},
		{name: "not following", err: follows.ErrNotFollowing, status: http.StatusNotFound, errorType: "NotFound"},
		{name: "not author", err: posts.ErrNotAuthor, status: http.StatusForbidden, errorType: "Forbidden"},
		{name: "parent not visible", err: posts.ErrParentNotVisible, status: http.StatusForbidden, errorType: "Forbidden"},
		{name: "not friends", err: messages.ErrNotFriends, status: http.StatusForbidden, errorType: "Forbidden"},
		{name: "parent pending", err: posts.ErrParentPending, status: http.StatusConflict, errorType: "Conflict"},
		{name: "duplicate reaction", err: reactions.ErrAlreadyReacted, status: http.StatusConflict, errorType: "Conflict"},
		{name: "duplicate follow", err: follows.ErrAlreadyFollowing, status: http.StatusConflict, errorType: "Conflict"},
		{name: "email taken", err: users.ErrEmailTaken, status: http.StatusConflict, errorType: "Conflict"},
		{name: "storage failure", err: &posts.UploadTargetsError{PostID: "p1", Err: errors.New("s3 down")}, status: http.StatusBadGateway, errorType: "StorageUnavailable"},
		{name: "unknown", err: errors.New("connection reset"), status: http.StatusInternalServerError, errorType: "InternalServerError"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleServiceError(w, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.errorType, body["error"])
		})
	}
}

func TestHandleServiceError_MasksInternalDetails(t *testing.T) {
	w := httptest.NewRecorder()
	HandleServiceError(w, errors.New("pq: password authentication failed"))
	assert.NotContains(t, w.Body.String(), "password")
}

func TestParseWindow(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/post?limit=5&after=p9", nil)
	w, err := ParseWindow(req)
	require.NoError(t, err)
	assert.Equal(t, 5, w.Limit)
	require.NotNil(t, w.After)
	assert.Equal(t, "p9", *w.After)
	assert.Nil(t, w.Before)

	for _, query := range []string{"limit=0", "limit=-3", "limit=ten", "before=a&after=b", "after="} {
		t.Run(query, func(t *testing.T) {
			_, err := ParseWindow(httptest.NewRequest(http.MethodGet, "/api/post?"+query, nil))
			assert.True(t, posts.IsValidationError(err), "expected validation error, got %v", err)
		})
	}
}

func TestParsePage(t *testing.T) {
	p, err := ParsePage(httptest.NewRequest(http.MethodGet, "/api/user/search", nil))
	require.NoError(t, err)
	assert.Equal(t, users.Page{Limit: 20}, p)

	p, err = ParsePage(httptest.NewRequest(http.MethodGet, "/api/user/search?limit=500&skip=3", nil))
	require.NoError(t, err)
	assert.Equal(t, users.Page{Limit: 100, Skip: 3}, p)

	_, err = ParsePage(httptest.NewRequest(http.MethodGet, "/api/user/search?skip=-1", nil))
	assert.True(t, users.IsValidationError(err))
}
