package chat

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/analysis/render"
	"github.com/zhouzirui/travel-policy/backend/internal/model/chat"
	chatService "github.com/zhouzirui/travel-policy/backend/internal/service/chat"
	"github.com/zhouzirui/travel-policy/backend/pkg/utils"
)

// Handler 对话服务的HTTP处理器
type Handler struct {
	chatSvc *chatService.Service
	log     *zap.Logger
}

// New 创建对话处理器
func New(chatSvc *chatService.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{chatSvc: chatSvc, log: log}
}

// ConversationView 是对话快照的渲染结果。
type ConversationView struct {
	ID         string           `json:"id"`
	SessionID  string           `json:"sessionId"`
	Loading    bool             `json:"loading"`
	Transcript []render.Message `json:"transcript"`
}

// NewConversationView 渲染快照中的每条消息。
func NewConversationView(snap chat.Snapshot) ConversationView {
	return ConversationView{
		ID:         snap.ID,
		SessionID:  snap.SessionID,
		Loading:    snap.Loading,
		Transcript: render.RenderTranscript(snap.Transcript),
	}
}

// RegisterRoutes 注册对话相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/conversations", h.handleCreate)
	r.Route("/conversations/{conversationID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Delete("/", h.handleDelete)
		r.Post("/messages", h.handleSendMessage)
		r.Post("/clear", h.handleClear)
	})
}

// handleCreate 创建并初始化对话
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	conv, err := h.chatSvc.Create(r.Context())
	if err != nil {
		h.log.Error("create conversation failed", zap.Error(err))
		utils.RespondError(w, http.StatusBadGateway, "failed to start conversation")
		return
	}
	utils.RespondJSON(w, http.StatusCreated, NewConversationView(conv.Snapshot()))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, NewConversationView(conv.Snapshot()))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.chatSvc.Delete(chi.URLParam(r, "conversationID")); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSendMessage 执行一轮问答，返回渲染后的 AI 回复
func (h *Handler) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	msg, err := conv.SendMessage(r.Context(), payload.Text)
	if err != nil {
		utils.RespondError(w, StatusForTurnError(err), err.Error())
		return
	}
	utils.RespondJSON(w, http.StatusOK, render.RenderMessage(msg))
}

// handleClear 清除上下文，换一个新的模型会话
func (h *Handler) handleClear(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := conv.Initialize(r.Context()); err != nil {
		utils.RespondError(w, http.StatusBadGateway, "failed to clear conversation")
		return
	}
	utils.RespondJSON(w, http.StatusOK, NewConversationView(conv.Snapshot()))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*chatService.Conversation, bool) {
	conv, err := h.chatSvc.Get(chi.URLParam(r, "conversationID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return conv, true
}

// StatusForTurnError 把对话错误映射为 HTTP 状态码。
func StatusForTurnError(err error) int {
	switch {
	case errors.Is(err, chatService.ErrEmptyMessage):
		return http.StatusBadRequest
	case errors.Is(err, chatService.ErrTurnInFlight), errors.Is(err, chatService.ErrStaleTurn):
		return http.StatusConflict
	case errors.Is(err, chatService.ErrConversationNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
