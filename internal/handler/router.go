package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/handler/chat"
	"github.com/zhouzirui/travel-policy/backend/internal/handler/quiz"
	"github.com/zhouzirui/travel-policy/backend/internal/handler/stream"
	"github.com/zhouzirui/travel-policy/backend/internal/handler/welcome"
	"github.com/zhouzirui/travel-policy/backend/internal/handler/wizard"
	middlewarePkg "github.com/zhouzirui/travel-policy/backend/internal/middleware"
	chatService "github.com/zhouzirui/travel-policy/backend/internal/service/chat"
	quizService "github.com/zhouzirui/travel-policy/backend/internal/service/quiz"
)

// Dependencies 汇总路由需要的服务。
type Dependencies struct {
	Chat           *chatService.Service
	Quiz           *quizService.Service
	AllowedOrigins []string
	Location       *time.Location
	Logger         *zap.Logger
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Dependencies) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(deps.AllowedOrigins))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		welcome.New().RegisterRoutes(api)
		wizard.New(deps.Location).RegisterRoutes(api)

		// Chat routes: REST, SSE and WebSocket share one registry
		chat.New(deps.Chat, log).RegisterRoutes(api)
		stream.New(deps.Chat, log).RegisterRoutes(api)
		stream.NewWebSocketHandler(deps.Chat, log).RegisterRoutes(api)

		quiz.New(deps.Quiz).RegisterRoutes(api)
	})

	return r
}
