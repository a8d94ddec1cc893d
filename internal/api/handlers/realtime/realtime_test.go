package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Murmur/internal/api/middleware"
	"Murmur/internal/core/messages"
	"Murmur/internal/core/users"
	"Murmur/internal/telemetry"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMessageService struct {
	sendFunc func(ctx context.Context, senderID, receiverID, content, originSession string) (*messages.Message, error)
}

func (f *fakeMessageService) Send(ctx context.Context, senderID, receiverID, content, originSession string) (*messages.Message, error) {
	return f.sendFunc(ctx, senderID, receiverID, content, originSession)
}

func (f *fakeMessageService) Conversation(ctx context.Context, userID, otherID string, page users.Page) ([]*messages.Message, error) {
	return nil, nil
}

func (f *fakeMessageService) DeleteMessage(ctx context.Context, userID, messageID string) error {
	return nil
}

// startServer serves the handler with the user id taken from the X-Test-User header
func startServer(t *testing.T, svc messages.Service) (*httptest.Server, *messages.Hub) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := messages.NewHub()
	go hub.Run(ctx)

	h := NewHandler(svc, hub, telemetry.NewMetrics(), []string{"https://murmur.test"})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get("X-Test-User"); id != "" {
			r = r.WithContext(middleware.SetTestUserID(r.Context(), id))
		}
		h.HandleConnect(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, hub
}

func dial(t *testing.T, srv *httptest.Server, userID string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	header.Set("X-Test-User", userID)
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

// readUntil returns the first frame of the wanted type
func readUntil(t *testing.T, conn *websocket.Conn, frameType string) messages.Frame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		var f messages.Frame
		require.NoError(t, conn.ReadJSON(&f))
		if f.Type == frameType {
			return f
		}
	}
}

func TestConnect_FirstFrameIsConnected(t *testing.T) {
	srv, hub := startServer(t, &fakeMessageService{})
	conn := dial(t, srv, "alice")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var first messages.Frame
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, messages.FrameConnected, first.Type)
	assert.Equal(t, "alice", first.UserID)

	presence := readUntil(t, conn, messages.FrameUserList)
	assert.Equal(t, []string{"alice"}, presence.Users)

	online, err := hub.Online(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, online)
}

func TestConnect_RequiresAuth(t *testing.T) {
	srv, _ := startServer(t, &fakeMessageService{})

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestConnect_RejectsForeignOrigin(t *testing.T) {
	srv, _ := startServer(t, &fakeMessageService{})

	header := http.Header{}
	header.Set("X-Test-User", "alice")
	header.Set("Origin", "https://evil.test")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPrivateMessage(t *testing.T) {
	origins := make(chan string, 3)
	svc := &fakeMessageService{
		sendFunc: func(ctx context.Context, senderID, receiverID, content, originSession string) (*messages.Message, error) {
			origins <- originSession
			switch {
			case receiverID == "stranger":
				return nil, messages.ErrNotFriends
			case content == "":
				return nil, messages.ErrInvalidContent
			}
			return &messages.Message{ID: "m1", SenderID: senderID, ReceiverID: receiverID, Content: content}, nil
		},
	}
	srv, _ := startServer(t, svc)
	conn := dial(t, srv, "alice")
	readUntil(t, conn, messages.FrameConnected)

	require.NoError(t, conn.WriteJSON(messages.InboundFrame{Type: messages.FramePrivateMessage, To: "bob", Message: "hi"}))
	saved := readUntil(t, conn, messages.FrameMessageSaved)
	require.NotNil(t, saved.Message)
	assert.Equal(t, "hi", saved.Message.Content)
	assert.NotEmpty(t, <-origins, "the sending session is excluded from its own echo")

	require.NoError(t, conn.WriteJSON(messages.InboundFrame{Type: messages.FramePrivateMessage, To: "stranger", Message: "hi"}))
	notFriends := readUntil(t, conn, messages.FrameNotFriends)
	assert.Equal(t, "stranger", notFriends.UserID)

	require.NoError(t, conn.WriteJSON(messages.InboundFrame{Type: messages.FramePrivateMessage, To: "bob"}))
	errFrame := readUntil(t, conn, messages.FrameError)
	assert.Equal(t, messages.ErrInvalidContent.Error(), errFrame.Error)
}

func TestMalformedFrameKeepsConnection(t *testing.T) {
	srv, _ := startServer(t, &fakeMessageService{})
	conn := dial(t, srv, "alice")
	readUntil(t, conn, messages.FrameConnected)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	errFrame := readUntil(t, conn, messages.FrameError)
	assert.Equal(t, "malformed frame", errFrame.Error)

	require.NoError(t, conn.WriteJSON(messages.InboundFrame{Type: "typing"}))
	errFrame = readUntil(t, conn, messages.FrameError)
	assert.Equal(t, "unsupported frame type", errFrame.Error)
}

func TestSessionEnqueue(t *testing.T) {
	s := newSession()
	for i := 0; i < sendBuffer; i++ {
		require.True(t, s.Enqueue(messages.Frame{Type: messages.FrameUserList}))
	}
	assert.False(t, s.Enqueue(messages.Frame{Type: messages.FrameUserList}), "full buffer drops")

	s.close()
	s.close()
	assert.False(t, s.Enqueue(messages.Frame{Type: messages.FrameUserList}))
}
