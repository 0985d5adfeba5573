// Package stream pushes chat turns to the browser over Server-Sent Events
// and WebSocket.
package stream

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/analysis/render"
	chatHandler "github.com/zhouzirui/travel-policy/backend/internal/handler/chat"
	chatService "github.com/zhouzirui/travel-policy/backend/internal/service/chat"
	"github.com/zhouzirui/travel-policy/backend/pkg/utils"
)

// Handler streams one chat turn via Server-Sent Events.
type Handler struct {
	chatSvc *chatService.Service
	log     *zap.Logger
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{chatSvc: chatSvc, log: log.Named("stream")}
}

// StreamResponse represents a streaming response chunk
type StreamResponse struct {
	Event          string                        `json:"event"`
	ConversationID string                        `json:"conversationId,omitempty"`
	Message        *render.Message               `json:"message,omitempty"`
	Conversation   *chatHandler.ConversationView `json:"conversation,omitempty"`
	Finished       bool                          `json:"finished,omitempty"`
	Error          string                        `json:"error,omitempty"`
	Status         int                           `json:"status,omitempty"`
}

// RegisterRoutes registers the SSE endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{conversationID}", func(w http.ResponseWriter, r *http.Request) {
		conversationID := chi.URLParam(r, "conversationID")
		userMessage := r.URL.Query().Get("message")

		if userMessage == "" {
			utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
			return
		}

		if err := h.HandleStreamRequest(r.Context(), w, conversationID, userMessage); err != nil {
			h.log.Warn("stream request failed", zap.String("conversation", conversationID), zap.Error(err))
		}
	})
}

// HandleStreamRequest runs one turn as a sequence of SSE events. A failed
// turn ends with an error event.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, conversationID string, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return errors.New("streaming unsupported")
	}

	conv, err := h.chatSvc.Get(conversationID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return err
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	utils.SendSSEEvent(w, flusher, "loading", StreamResponse{Event: "loading", ConversationID: conversationID})

	msg, err := conv.SendMessage(ctx, userMessage)
	if err != nil {
		utils.SendSSEEvent(w, flusher, "error", StreamResponse{
			Event:          "error",
			ConversationID: conversationID,
			Error:          err.Error(),
			Status:         chatHandler.StatusForTurnError(err),
		})
		return err
	}

	rendered := render.RenderMessage(msg)
	utils.SendSSEEvent(w, flusher, "message", StreamResponse{
		Event:          "message",
		ConversationID: conversationID,
		Message:        &rendered,
	})

	view := chatHandler.NewConversationView(conv.Snapshot())
	utils.SendSSEEvent(w, flusher, "transcript", StreamResponse{
		Event:          "transcript",
		ConversationID: conversationID,
		Conversation:   &view,
	})

	utils.SendSSEEvent(w, flusher, "end", StreamResponse{
		Event:          "end",
		ConversationID: conversationID,
		Finished:       true,
	})

	h.log.Debug("stream completed", zap.String("conversation", conversationID))
	return nil
}
