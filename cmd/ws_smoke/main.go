package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"root_tycoon/internal/logger"
	"root_tycoon/internal/ws"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Registers a throwaway player against a running server, joins the chat
// and waits for its own message to come back.
func main() {
	base := flag.String("addr", "127.0.0.1:8080", "server host:port")
	flag.Parse()

	name := "smoke" + uuid.NewString()[:8]
	token, err := register(*base, name)
	if err != nil {
		logger.Fatal("register failed", "error", err)
	}

	u := url.URL{Scheme: "ws", Host: *base, Path: "/ws/chat", RawQuery: "token=" + url.QueryEscape(token)}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		logger.Fatal("dial failed", "error", err)
	}
	defer conn.Close()

	text := "hello from " + name
	if err := conn.WriteJSON(ws.Envelope{Type: ws.MsgSend, Payload: ws.SendPayload{Text: text}}); err != nil {
		logger.Fatal("send failed", "error", err)
	}

	deadline := time.Now().Add(5 * time.Second)
	conn.SetReadDeadline(deadline)
	for {
		var f struct {
			Type    string          `json:"type"`
			Payload json.RawMessage `json:"payload"`
		}
		if err := conn.ReadJSON(&f); err != nil {
			logger.Fatal("read failed", "error", err)
		}
		fmt.Printf("<- %s %s\n", f.Type, f.Payload)
		if f.Type == ws.MsgChat && bytes.Contains(f.Payload, []byte(text)) {
			fmt.Println("ok")
			os.Exit(0)
		}
	}
}

func register(host, name string) (string, error) {
	body, _ := json.Marshal(map[string]string{
		"email":    name + "@example.com",
		"username": name,
		"password": "password123",
	})
	res, err := http.Post("http://"+host+"/api/v1/auth/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("register: status %d", res.StatusCode)
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Token, nil
}
