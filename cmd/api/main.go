package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/travel-policy/backend/internal/config"
	"github.com/zhouzirui/travel-policy/backend/internal/handler"
	"github.com/zhouzirui/travel-policy/backend/internal/service/ai"
	"github.com/zhouzirui/travel-policy/backend/internal/service/chat"
	"github.com/zhouzirui/travel-policy/backend/internal/service/interaction"
	"github.com/zhouzirui/travel-policy/backend/internal/service/quiz"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger, err := cfg.Log.NewLogger()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	// 缺少凭证属于启动期致命错误
	gateway, err := ai.NewGateway(ctx, cfg.AI, logger)
	if err != nil {
		logger.Fatal("failed to initialize model gateway", zap.String("provider", cfg.AI.Provider), zap.Error(err))
	}
	logger.Info("model gateway ready", zap.String("provider", cfg.AI.Provider))

	sink, closeSink := newInteractionSink(cfg.Interaction, logger)
	defer closeSink()

	interactions := interaction.NewLogger(sink, interaction.Config{
		QueueSize: cfg.Interaction.QueueSize,
		Timeout:   cfg.Interaction.Timeout,
	}, logger)
	defer func() { _ = interactions.Close() }()

	router := handler.NewRouter(handler.Dependencies{
		Chat:           chat.NewService(gateway, interactions, logger),
		Quiz:           quiz.NewService(gateway, logger),
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Logger:         logger,
	})

	startServer(ctx, cfg.Server, router, logger)
}

// newInteractionSink 组合已配置的投递目标，未配置时返回 nil（每次调用都会告警并跳过）
func newInteractionSink(cfg config.InteractionConfig, logger *zap.Logger) (interaction.Sink, func()) {
	var sinks interaction.MultiSink
	closeFn := func() {}

	form := interaction.NewFormSink(cfg.Endpoint, &http.Client{Timeout: cfg.Timeout})
	if form.Enabled() {
		sinks = append(sinks, form)
		logger.Info("interaction form sink enabled")
	}

	if cfg.AMQPURL != "" {
		amqpSink, err := interaction.NewAMQPSink(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("failed to connect interaction AMQP sink", zap.Error(err))
		} else {
			sinks = append(sinks, amqpSink)
			closeFn = func() { _ = amqpSink.Close() }
			logger.Info("interaction AMQP sink enabled", zap.String("queue", cfg.AMQPQueue))
		}
	}

	if len(sinks) == 0 {
		return nil, closeFn
	}
	return sinks, closeFn
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("travel policy backend listening", zap.String("addr", addr))
	if err := runServer(ctx, srv); err != nil {
		logger.Error("server error", zap.Error(err))
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
