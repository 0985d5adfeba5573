package welcome

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/travel-policy/backend/internal/model/policy"
	"github.com/zhouzirui/travel-policy/backend/pkg/utils"
)

// Handler 欢迎页内容的HTTP处理器
type Handler struct {
	content policy.Welcome
}

// New 创建欢迎页处理器
func New() *Handler {
	return &Handler{content: policy.WelcomeContent()}
}

// RegisterRoutes 注册欢迎页路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/welcome", h.handleWelcome)
}

// handleWelcome 返回说明、示例问题与结语
func (h *Handler) handleWelcome(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.content)
}
