package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/travel-policy/backend/internal/service/chat"
)

func newChatService(t *testing.T) (*chatservice.Service, *chatservice.Conversation) {
	t.Helper()
	svc := chatservice.NewService(ai.NewMockGateway(), nil, nil)
	conv, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	return svc, conv
}

func TestHandleStreamRequestEmitsEvents(t *testing.T) {
	svc, conv := newChatService(t)
	handler := New(svc, nil)

	resp := httptest.NewRecorder()
	if err := handler.HandleStreamRequest(context.Background(), resp, conv.ID(), "住宿費怎麼算？"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	body := resp.Body.String()
	for _, event := range []string{"event: loading", "event: message", "event: transcript", "event: end"} {
		if !strings.Contains(body, event) {
			t.Fatalf("missing %q in %s", event, body)
		}
	}
	if got := len(conv.Snapshot().Transcript); got != 2 {
		t.Fatalf("expected 2 transcript entries, got %d", got)
	}
}

func TestHandleStreamRequestUnknownConversation(t *testing.T) {
	svc, _ := newChatService(t)
	handler := New(svc, nil)

	resp := httptest.NewRecorder()
	if err := handler.HandleStreamRequest(context.Background(), resp, "missing", "hi"); err == nil {
		t.Fatal("expected error for unknown conversation")
	}
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestStreamRouteRequiresMessage(t *testing.T) {
	svc, conv := newChatService(t)
	r := chi.NewRouter()
	New(svc, nil).RegisterRoutes(r)

	req := httptest.NewRequest(http.MethodGet, "/stream/"+conv.ID(), nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

type wsEvent struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func dialWebSocket(t *testing.T, svc *chatservice.Service, id string) *websocket.Conn {
	t.Helper()
	r := chi.NewRouter()
	NewWebSocketHandler(svc, nil).RegisterRoutes(r)
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/" + id
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial err: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readUntil(t *testing.T, conn *websocket.Conn, kind string) wsEvent {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	for {
		var evt wsEvent
		if err := conn.ReadJSON(&evt); err != nil {
			t.Fatalf("read err waiting for %s: %v", kind, err)
		}
		if evt.Type == kind {
			return evt
		}
	}
}

func TestWebSocketMessageTurn(t *testing.T) {
	svc, conv := newChatService(t)
	conn := dialWebSocket(t, svc, conv.ID())

	readUntil(t, conn, "transcript")

	if err := conn.WriteJSON(map[string]string{"type": "message", "text": "住宿費怎麼算？"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	readUntil(t, conn, "loading")
	evt := readUntil(t, conn, "message")

	var msg struct {
		Role string `json:"role"`
	}
	if err := json.Unmarshal(evt.Data, &msg); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if msg.Role != "ai" {
		t.Fatalf("expected ai message, got %s", msg.Role)
	}
}

func TestWebSocketClearResetsTranscript(t *testing.T) {
	svc, conv := newChatService(t)
	if _, err := conv.SendMessage(context.Background(), "hi"); err != nil {
		t.Fatalf("SendMessage err: %v", err)
	}
	before := conv.Snapshot().SessionID
	conn := dialWebSocket(t, svc, conv.ID())
	readUntil(t, conn, "transcript")

	if err := conn.WriteJSON(map[string]string{"type": "clear"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	evt := readUntil(t, conn, "transcript")

	var view struct {
		SessionID  string            `json:"sessionId"`
		Transcript []json.RawMessage `json:"transcript"`
	}
	if err := json.Unmarshal(evt.Data, &view); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(view.Transcript) != 0 || view.SessionID == before {
		t.Fatalf("unexpected view after clear %+v", view)
	}
}

func TestWebSocketUnknownType(t *testing.T) {
	svc, conv := newChatService(t)
	conn := dialWebSocket(t, svc, conv.ID())
	readUntil(t, conn, "transcript")

	if err := conn.WriteJSON(map[string]string{"type": "audio"}); err != nil {
		t.Fatalf("write err: %v", err)
	}
	readUntil(t, conn, "error")
}
