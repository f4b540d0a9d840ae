package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gorilla/websocket"
)

// ws_client.go handles the realtime side of the CLI

// WSURL turns the API base URL into the /ws endpoint
func WSURL(apiURL string) (string, error) {
	u, err := url.Parse(apiURL)
	if err != nil {
		return "", fmt.Errorf("invalid API URL: %w", err)
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	return u.String(), nil
}

func Dial(ctx context.Context, apiURL, token string) (*websocket.Conn, error) {
	wsURL, err := WSURL(apiURL)
	if err != nil {
		return nil, err
	}
	header := http.Header{}
	if token != "" {
		header.Add("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		return nil, fmt.Errorf("connection failed: %w", err)
	}
	return conn, nil
}

// Listen prints every message until ctx ends or the server hangs up
func Listen(ctx context.Context, conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				errCh <- err
				return
			}
			PrintMessage(data)
		}
	}()

	select {
	case <-ctx.Done():
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		return nil
	case err := <-errCh:
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}
		return err
	}
}

// Request sends one envelope and waits for the reply carrying the same id,
// skipping the welcome message and unrelated broadcasts
func Request(conn *websocket.Conn, msgType, id, action string, payload json.RawMessage, timeout time.Duration) (map[string]any, error) {
	data := map[string]any{"action": action}
	if len(payload) > 0 {
		data["payload"] = payload
	}
	envelope := map[string]any{"type": msgType, "id": id, "data": data}
	if err := conn.WriteJSON(envelope); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(timeout)
	conn.SetReadDeadline(deadline)
	for {
		var msg map[string]any
		if err := conn.ReadJSON(&msg); err != nil {
			return nil, err
		}
		if msg["id"] == id && (msg["type"] == msgType || msg["type"] == "error") {
			return msg, nil
		}
	}
}

// FormatMessage renders a server message as one line; the bool is false for unknown shapes
func FormatMessage(data []byte) (string, bool) {
	var msg map[string]any
	if err := json.Unmarshal(data, &msg); err != nil {
		return "", false
	}
	msgType, _ := msg["type"].(string)

	switch msgType {
	case "info":
		return fmt.Sprintf("[info] %v", msg["message"]), true
	case "error":
		if d, ok := msg["data"].(map[string]any); ok {
			return fmt.Sprintf("[error] %v %v (id=%v)", d["status"], d["message"], msg["id"]), true
		}
		return fmt.Sprintf("[error] %v", msg["message"]), true
	case "":
		return "", false
	default:
		action := ""
		if d, ok := msg["data"].(map[string]any); ok {
			action, _ = d["action"].(string)
			if payload, err := json.Marshal(d["payload"]); err == nil && d["payload"] != nil {
				return fmt.Sprintf("[%s] %s id=%v %s", msgType, action, msg["id"], payload), true
			}
		}
		return fmt.Sprintf("[%s] %s id=%v", msgType, action, msg["id"]), true
	}
}

func PrintMessage(data []byte) {
	line, ok := FormatMessage(data)
	if !ok {
		color.HiBlack("%s", data)
		return
	}
	switch {
	case strings.HasPrefix(line, "[info]"), strings.HasPrefix(line, "[heartbeat]"):
		color.Yellow("%s", line)
	case strings.HasPrefix(line, "[error]"):
		color.Red("%s", line)
	default:
		color.Cyan("%s", line)
	}
}
