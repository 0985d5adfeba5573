package stream

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/analysis/render"
	chatHandler "github.com/zhouzirui/travel-policy/backend/internal/handler/chat"
	chatService "github.com/zhouzirui/travel-policy/backend/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
)

// WebSocketHandler WebSocket对话处理器
type WebSocketHandler struct {
	chatSvc  *chatService.Service
	log      *zap.Logger
	upgrader websocket.Upgrader
}

// NewWebSocketHandler 创建WebSocket处理器
func NewWebSocketHandler(chatSvc *chatService.Service, log *zap.Logger) *WebSocketHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &WebSocketHandler{
		chatSvc: chatSvc,
		log:     log.Named("websocket"),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes 注册WebSocket路由
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{conversationID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type           string      `json:"type"`
	ConversationID string      `json:"conversationId,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Timestamp      int64       `json:"timestamp"`
}

// socket 串行化写操作，gorilla 连接不支持并发写
type socket struct {
	conn           *websocket.Conn
	conversationID string
	log            *zap.Logger
	mu             sync.Mutex
}

func (s *socket) send(kind string, data interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := outgoingMessage{
		Type:           kind,
		ConversationID: s.conversationID,
		Data:           data,
		Timestamp:      time.Now().Unix(),
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Debug("write failed", zap.String("type", kind), zap.Error(err))
	}
}

func (s *socket) sendError(message string, status int) {
	s.send("error", map[string]any{"message": message, "status": status})
}

func (s *socket) ping() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second))
}

// handleWebSocket 处理WebSocket连接
func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")
	conv, err := h.chatSvc.Get(conversationID)
	if err != nil {
		http.Error(w, "conversation not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	log := h.log.With(zap.String("conversation", conversationID))
	log.Info("connection opened")

	ctx, cancel := context.WithCancel(r.Context())
	var turns sync.WaitGroup
	defer func() {
		cancel()
		turns.Wait()
	}()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(readTimeout))
		return nil
	})

	sock := &socket{conn: conn, conversationID: conversationID, log: log}
	go h.pingLoop(ctx, sock)

	sock.send("transcript", chatHandler.NewConversationView(conv.Snapshot()))

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("read error", zap.Error(err))
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		switch msg.Type {
		case "message":
			// 在独立 goroutine 中执行，以便回合进行中到达的消息能立即得到 busy 错误
			turns.Add(1)
			go func(text string) {
				defer turns.Done()
				h.runTurn(ctx, sock, conv, text)
			}(msg.Text)
		case "clear":
			if err := conv.Initialize(ctx); err != nil {
				sock.sendError("failed to clear conversation", http.StatusBadGateway)
				continue
			}
			sock.send("transcript", chatHandler.NewConversationView(conv.Snapshot()))
		case "ping":
			sock.send("pong", nil)
		default:
			sock.sendError("unsupported message type: "+msg.Type, http.StatusBadRequest)
		}
	}
}

func (h *WebSocketHandler) runTurn(ctx context.Context, sock *socket, conv *chatService.Conversation, text string) {
	if conv.Loading() {
		sock.sendError(chatService.ErrTurnInFlight.Error(), http.StatusConflict)
		return
	}

	sock.send("loading", map[string]bool{"loading": true})

	msg, err := conv.SendMessage(ctx, text)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		sock.sendError(err.Error(), chatHandler.StatusForTurnError(err))
		return
	}

	sock.send("message", render.RenderMessage(msg))
	sock.send("transcript", chatHandler.NewConversationView(conv.Snapshot()))
}

// pingLoop 定期发送ping消息
func (h *WebSocketHandler) pingLoop(ctx context.Context, sock *socket) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := sock.ping(); err != nil {
				return
			}
		}
	}
}
