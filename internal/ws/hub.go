package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"root_tycoon/internal/domain"
	"root_tycoon/internal/logger"
	"root_tycoon/internal/metrics"
)

// ChatService persists messages and serves the replay history.
type ChatService interface {
	Post(ctx context.Context, userID int64, text string) (*domain.ChatMessage, error)
	History(ctx context.Context) ([]domain.ChatMessage, error)
}

// Hub fans chat messages out to every connected client.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	chat    ChatService
	log     *slog.Logger
}

func NewHub(chat ChatService) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		chat:    chat,
		log:     logger.Component("chat"),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()

	metrics.ChatConnections.Inc()
	h.log.Debug("client connected", "user_id", c.UserID, "clients", n)
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	_, ok := h.clients[c]
	if ok {
		delete(h.clients, c)
		close(c.Send)
	}
	h.mu.Unlock()

	if ok {
		metrics.ChatConnections.Dec()
		h.log.Debug("client disconnected", "user_id", c.UserID)
	}
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast delivers m to every client. Clients with a full buffer are
// dropped rather than blocking the rest.
func (h *Hub) Broadcast(m *domain.ChatMessage) {
	data, err := json.Marshal(Envelope{Type: MsgChat, Payload: m})
	if err != nil {
		h.log.Error("encode chat message", "error", err)
		return
	}

	var slow []*Client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.Send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.log.Warn("dropping slow client", "user_id", c.UserID)
		h.Unregister(c)
	}
}

func (h *Hub) handleMessage(c *Client, raw []byte) {
	var in struct {
		Type    string          `json:"type"`
		Payload json.RawMessage `json:"payload"`
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		c.sendError(ErrCodeBadFrame, "invalid message")
		return
	}

	switch in.Type {
	case MsgPing:
		c.send(Envelope{Type: MsgPong})
	case MsgSend:
		var p SendPayload
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			c.sendError(ErrCodeBadPayload, "invalid payload")
			return
		}
		m, err := h.chat.Post(context.Background(), c.UserID, p.Text)
		if err != nil {
			c.sendError(ErrCodeRejected, err.Error())
			return
		}
		h.Broadcast(m)
	default:
		c.sendError(ErrCodeUnknownType, "unknown message type")
	}
}
