package follower

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Murmur/internal/api/middleware"
	"Murmur/internal/core/follows"
	"Murmur/internal/core/users"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockFollowService struct {
	mock.Mock
}

func (m *MockFollowService) Follow(ctx context.Context, followerID, followedID string) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *MockFollowService) Unfollow(ctx context.Context, followerID, followedID string) error {
	return m.Called(ctx, followerID, followedID).Error(0)
}

func (m *MockFollowService) IsFollowing(ctx context.Context, followerID, followedID string) (bool, error) {
	args := m.Called(ctx, followerID, followedID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowService) FollowedIDs(ctx context.Context, userID string) ([]string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockFollowService) Friends(ctx context.Context, userID string) ([]users.UserView, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]users.UserView), args.Error(1)
}

func (m *MockFollowService) AreFriends(ctx context.Context, a, b string) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func request(method, target, userID, targetID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	ctx := req.Context()
	if userID != "" {
		ctx = middleware.SetTestUserID(ctx, userID)
	}
	rctx := chi.NewRouteContext()
	if targetID != "" {
		rctx.URLParams.Add("userId", targetID)
	}
	return req.WithContext(context.WithValue(ctx, chi.RouteCtxKey, rctx))
}

func TestHandleFollow(t *testing.T) {
	tests := []struct {
		err    error
		name   string
		target string
		status int
	}{
		{name: "follows", target: "bob", status: http.StatusNoContent},
		{name: "self", target: "alice", err: follows.ErrSelfFollow, status: http.StatusBadRequest},
		{name: "already", target: "bob", err: follows.ErrAlreadyFollowing, status: http.StatusConflict},
		{name: "missing user", target: "ghost", err: users.ErrUserNotFound, status: http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockFollowService)
			svc.On("Follow", mock.Anything, "alice", tt.target).Return(tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc).HandleFollow(w, request(http.MethodPost, "/api/follower/follow/"+tt.target, "alice", tt.target))

			assert.Equal(t, tt.status, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleFollow_RequiresAuth(t *testing.T) {
	svc := new(MockFollowService)
	w := httptest.NewRecorder()
	NewHandler(svc).HandleFollow(w, request(http.MethodPost, "/api/follower/follow/bob", "", "bob"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "Follow", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandleUnfollow(t *testing.T) {
	svc := new(MockFollowService)
	svc.On("Unfollow", mock.Anything, "alice", "bob").Return(nil).Once()
	svc.On("Unfollow", mock.Anything, "alice", "carol").Return(follows.ErrNotFollowing).Once()
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	h.HandleUnfollow(w, request(http.MethodDelete, "/api/follower/unfollow/bob", "alice", "bob"))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	h.HandleUnfollow(w, request(http.MethodDelete, "/api/follower/unfollow/carol", "alice", "carol"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleFriends(t *testing.T) {
	svc := new(MockFollowService)
	svc.On("Friends", mock.Anything, "alice").Return(nil, nil).Once()
	svc.On("Friends", mock.Anything, "bob").Return([]users.UserView{{ID: "alice", Username: "alice"}}, nil).Once()
	h := NewHandler(svc)

	w := httptest.NewRecorder()
	h.HandleFriends(w, request(http.MethodGet, "/api/follower/friends", "alice", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"friends":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	h.HandleFriends(w, request(http.MethodGet, "/api/follower/friends", "bob", ""))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"alice"`)
}
