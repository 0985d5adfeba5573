package quiz

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	quizService "github.com/zhouzirui/travel-policy/backend/internal/service/quiz"
	"github.com/zhouzirui/travel-policy/backend/pkg/utils"
)

// Handler 测验的HTTP处理器
type Handler struct {
	quizSvc *quizService.Service
}

// New 创建测验处理器
func New(quizSvc *quizService.Service) *Handler {
	return &Handler{quizSvc: quizSvc}
}

// RegisterRoutes 注册测验相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/quizzes", h.handleCreate)
	r.Route("/quizzes/{quizID}", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Delete("/", h.handleDelete)
		r.Post("/answer", h.handleAnswer)
		r.Post("/next", h.handleNext)
		r.Post("/restart", h.handleRestart)
	})
}

// handleCreate 创建测验并立即拉取题目；失败时返回 finished 状态与错误提示
func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	engine := h.quizSvc.Create(r.Context())
	utils.RespondJSON(w, http.StatusCreated, engine.Snapshot())
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.lookup(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, engine.Snapshot())
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.quizSvc.Delete(chi.URLParam(r, "quizID")); err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAnswer 提交当前题目的答案
func (h *Handler) handleAnswer(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var payload struct {
		Option string `json:"option"`
	}
	if err := utils.DecodeJSON(r, &payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, applied := engine.SelectAnswer(payload.Option)
	if !applied {
		utils.RespondJSON(w, http.StatusConflict, snap)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleNext 进入下一题或结束
func (h *Handler) handleNext(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.lookup(w, r)
	if !ok {
		return
	}

	snap, applied := engine.Advance()
	if !applied {
		utils.RespondJSON(w, http.StatusConflict, snap)
		return
	}
	utils.RespondJSON(w, http.StatusOK, snap)
}

// handleRestart 重试或再玩一次
func (h *Handler) handleRestart(w http.ResponseWriter, r *http.Request) {
	engine, ok := h.lookup(w, r)
	if !ok {
		return
	}

	err := engine.Restart(r.Context())
	switch {
	case errors.Is(err, quizService.ErrInvalidTransition), errors.Is(err, quizService.ErrFetchInFlight):
		utils.RespondError(w, http.StatusConflict, err.Error())
		return
	}
	// 生成失败已记录在快照中（finished + error）
	utils.RespondJSON(w, http.StatusOK, engine.Snapshot())
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*quizService.Engine, bool) {
	engine, err := h.quizSvc.Get(chi.URLParam(r, "quizID"))
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, err.Error())
		return nil, false
	}
	return engine, true
}
