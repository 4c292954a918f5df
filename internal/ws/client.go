package ws

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 30 * time.Second
	pingPeriod     = 25 * time.Second
	maxMessageSize = 4096
)

type Client struct {
	UserID int64
	Conn   *websocket.Conn
	Send   chan []byte
	Hub    *Hub
}

func NewClient(userID int64, conn *websocket.Conn, hub *Hub) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, 256),
		Hub:    hub,
	}
}

// Run registers the client, replays history and blocks until the
// connection closes.
func (c *Client) Run() {
	c.Hub.Register(c)
	go c.writePump()

	c.send(Envelope{Type: MsgReady, Payload: ReadyPayload{UserID: c.UserID, Online: c.Hub.Count()}})
	if history, err := c.Hub.chat.History(context.Background()); err != nil {
		c.Hub.log.Error("load chat history", "error", err)
	} else {
		c.send(Envelope{Type: MsgHistory, Payload: HistoryPayload{Messages: history}})
	}

	c.readPump()
}

func (c *Client) readPump() {
	defer func() {
		c.Hub.Unregister(c)
		_ = c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, msg, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.Hub.log.Debug("read error", "user_id", c.UserID, "error", err)
			}
			return
		}
		c.Hub.handleMessage(c, msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Hub.log.Debug("write error", "user_id", c.UserID, "error", err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// send queues a frame for this client only; it never blocks.
func (c *Client) send(e Envelope) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	c.Hub.mu.RLock()
	defer c.Hub.mu.RUnlock()
	if _, ok := c.Hub.clients[c]; !ok {
		return
	}
	select {
	case c.Send <- data:
	default:
	}
}

func (c *Client) sendError(code, msg string) {
	c.send(Envelope{Type: MsgError, Payload: ErrorPayload{Code: code, Message: msg}})
}
