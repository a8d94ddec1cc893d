package messages

import "time"

const MaxContentLength = 1000

// Message is a direct message between two friends
type Message struct {
	CreatedAt  time.Time `json:"createdAt"`
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
}

// Frame types exchanged over the realtime channel
const (
	FrameConnected      = "connected"
	FrameUserList       = "update_user_list"
	FramePrivateMessage = "private_message"
	FrameReceiveMessage = "receive_message"
	FrameMessageSaved   = "message_saved"
	FrameNotFriends     = "not_friends"
	FrameError          = "error"
)

// Frame is a server-to-client realtime frame
type Frame struct {
	Message *Message `json:"message,omitempty"`
	Type    string   `json:"type"`
	Error   string   `json:"error,omitempty"`
	UserID  string   `json:"userId,omitempty"`
	Users   []string `json:"users,omitempty"`
}

// InboundFrame is a client-to-server realtime frame
type InboundFrame struct {
	Type    string `json:"type"`
	To      string `json:"to"`
	Message string `json:"message"`
}

// Delivery routes a frame to every live session of an account, optionally
// skipping the session the triggering action came from
type Delivery struct {
	Frame         Frame  `json:"frame"`
	AccountID     string `json:"accountId"`
	ExceptSession string `json:"exceptSession,omitempty"`
}
