package ws

import "root_tycoon/internal/domain"

const (
	// client - server
	MsgSend = "send"
	MsgPing = "ping"

	// server - client
	MsgReady   = "ready"
	MsgHistory = "history"
	MsgChat    = "chat"
	MsgPong    = "pong"
	MsgError   = "error"
)

// Error codes sent in ErrorPayload.Code.
const (
	ErrCodeBadFrame    = "bad_frame"
	ErrCodeBadPayload  = "bad_payload"
	ErrCodeRejected    = "message_rejected"
	ErrCodeUnknownType = "unknown_type"
)

// Envelope wraps every frame in both directions.
type Envelope struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

type SendPayload struct {
	Text string `json:"text"`
}

// ReadyPayload is the first frame after the upgrade.
type ReadyPayload struct {
	UserID int64 `json:"user_id"`
	Online int   `json:"online"`
}

type HistoryPayload struct {
	Messages []domain.ChatMessage `json:"messages"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
