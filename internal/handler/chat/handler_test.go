package chat

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/travel-policy/backend/internal/analysis/render"
	"github.com/zhouzirui/travel-policy/backend/internal/model/chat"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
	chatservice "github.com/zhouzirui/travel-policy/backend/internal/service/chat"
)

func setupRouter() (*chi.Mux, *chatservice.Service) {
	chatSvc := chatservice.NewService(ai.NewMockGateway(), nil, nil)
	handler := New(chatSvc, nil)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, chatSvc
}

func createConversation(t *testing.T, r http.Handler) ConversationView {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/conversations", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}
	var view ConversationView
	if err := json.Unmarshal(resp.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	return view
}

func postMessage(r http.Handler, id, text string) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(map[string]string{"text": text})
	req := httptest.NewRequest(http.MethodPost, "/conversations/"+id+"/messages", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestCreateConversation(t *testing.T) {
	r, chatSvc := setupRouter()
	view := createConversation(t, r)

	if view.ID == "" || view.SessionID == "" {
		t.Fatalf("expected ids, got %+v", view)
	}
	if len(view.Transcript) != 0 {
		t.Fatalf("expected empty transcript, got %d", len(view.Transcript))
	}
	if chatSvc.Len() != 1 {
		t.Fatalf("expected one conversation, got %d", chatSvc.Len())
	}
}

func TestSendMessageReturnsRenderedReply(t *testing.T) {
	r, _ := setupRouter()
	view := createConversation(t, r)

	resp := postMessage(r, view.ID, "住宿費怎麼算？")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var msg render.Message
	if err := json.Unmarshal(resp.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if msg.Role != chat.RoleAI {
		t.Fatalf("expected ai role, got %s", msg.Role)
	}
	if !msg.Fragments.HasDisclaimer() {
		t.Fatalf("expected disclaimer fragment, got %+v", msg.Fragments)
	}

	req := httptest.NewRequest(http.MethodGet, "/conversations/"+view.ID+"/", nil)
	getResp := httptest.NewRecorder()
	r.ServeHTTP(getResp, req)

	var snap ConversationView
	if err := json.Unmarshal(getResp.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if len(snap.Transcript) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(snap.Transcript))
	}
}

func TestSendMessageEmptyText(t *testing.T) {
	r, _ := setupRouter()
	view := createConversation(t, r)

	if resp := postMessage(r, view.ID, "   "); resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSendMessageUnknownConversation(t *testing.T) {
	r, _ := setupRouter()

	if resp := postMessage(r, "missing", "hi"); resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}

func TestClearConversationIssuesNewSession(t *testing.T) {
	r, _ := setupRouter()
	view := createConversation(t, r)
	postMessage(r, view.ID, "hi")

	req := httptest.NewRequest(http.MethodPost, "/conversations/"+view.ID+"/clear", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var cleared ConversationView
	if err := json.Unmarshal(resp.Body.Bytes(), &cleared); err != nil {
		t.Fatalf("decode err: %v", err)
	}
	if cleared.SessionID == view.SessionID {
		t.Fatal("expected a new session id")
	}
	if len(cleared.Transcript) != 0 {
		t.Fatalf("expected empty transcript, got %d", len(cleared.Transcript))
	}
}

func TestDeleteConversation(t *testing.T) {
	r, chatSvc := setupRouter()
	view := createConversation(t, r)

	req := httptest.NewRequest(http.MethodDelete, "/conversations/"+view.ID+"/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if chatSvc.Len() != 0 {
		t.Fatalf("expected no conversations, got %d", chatSvc.Len())
	}
}

func TestStatusForTurnError(t *testing.T) {
	cases := map[error]int{
		chatservice.ErrEmptyMessage:         http.StatusBadRequest,
		chatservice.ErrTurnInFlight:         http.StatusConflict,
		chatservice.ErrStaleTurn:            http.StatusConflict,
		chatservice.ErrConversationNotFound: http.StatusNotFound,
	}
	for err, want := range cases {
		if got := StatusForTurnError(err); got != want {
			t.Fatalf("StatusForTurnError(%v) = %d, want %d", err, got, want)
		}
	}
}
