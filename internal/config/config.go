package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/genai"
)

// 支持的大模型提供方。
const (
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
	ProviderMock   = "mock"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server      ServerConfig
	AI          AIConfig
	Interaction InteractionConfig
	Log         LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	interaction, err := loadInteractionConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, AI: ai, Interaction: interaction, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	origins := splitList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "*"))

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, AllowedOrigins: origins}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, AllowedOrigins: origins}, nil
}

// AIConfig 描述大模型相关配置。
type AIConfig struct {
	Provider string

	GeminiAPIKey string
	GeminiModel  string

	APIKey      string
	AccessKey   string
	SecretKey   string
	Model       string
	BaseURL     string
	Region      string
	Temperature *float64
	TopP        *float64
	MaxTokens   *int
}

// Validate 检查所选提供方的凭证是否齐全。缺失凭证属于启动期致命错误。
func (c AIConfig) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY (或 API_KEY) 未设置")
		}
	case ProviderArk:
		if c.Model == "" || (c.APIKey == "" && (c.AccessKey == "" || c.SecretKey == "")) {
			return fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.Provider)
	}
	return nil
}

// NewGenAIClient 使用配置创建 Gemini 客户端。
func (c AIConfig) NewGenAIClient(ctx context.Context) (*genai.Client, error) {
	if c.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY (或 API_KEY) 未设置")
	}
	return genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
}

// NewChatModel 使用配置创建一个 Ark 模型实例。
func (c AIConfig) NewChatModel(ctx context.Context) (model.ChatModel, error) {
	if c.Model == "" || (c.APIKey == "" && (c.AccessKey == "" || c.SecretKey == "")) {
		return nil, fmt.Errorf("Ark 凭证或模型配置缺失，至少提供 ARK_API_KEY + ARK_MODEL 或 AK/SK 组合")
	}

	var temperature *float32
	if c.Temperature != nil {
		val := float32(*c.Temperature)
		temperature = &val
	}

	var topP *float32
	if c.TopP != nil {
		val := float32(*c.TopP)
		topP = &val
	}

	cfg := &ark.ChatModelConfig{
		BaseURL:     c.BaseURL,
		Region:      c.Region,
		APIKey:      c.APIKey,
		AccessKey:   c.AccessKey,
		SecretKey:   c.SecretKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: temperature,
		TopP:        topP,
	}

	return ark.NewChatModel(ctx, cfg)
}

func loadAIConfig() (AIConfig, error) {
	temperature, err := parseOptionalFloatEnv("ARK_TEMPERATURE")
	if err != nil {
		return AIConfig{}, err
	}

	topP, err := parseOptionalFloatEnv("ARK_TOP_P")
	if err != nil {
		return AIConfig{}, err
	}

	maxTokens, err := parseOptionalIntEnv("ARK_MAX_TOKENS")
	if err != nil {
		return AIConfig{}, err
	}

	geminiKey := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	if geminiKey == "" {
		geminiKey = strings.TrimSpace(os.Getenv("API_KEY"))
	}

	arkModel := strings.TrimSpace(os.Getenv("ARK_MODEL"))
	if arkModel == "" {
		arkModel = strings.TrimSpace(os.Getenv("Model"))
	}

	return AIConfig{
		Provider:     strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGemini)),
		GeminiAPIKey: geminiKey,
		GeminiModel:  getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		APIKey:       strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		AccessKey:    strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		SecretKey:    strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		Model:        arkModel,
		BaseURL:      getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		Region:       getEnvOrDefault("ARK_REGION", "cn-beijing"),
		Temperature:  temperature,
		TopP:         topP,
		MaxTokens:    maxTokens,
	}, nil
}

// InteractionConfig 描述问答记录的外部投递目标。
type InteractionConfig struct {
	Endpoint  string
	AMQPURL   string
	AMQPQueue string
	QueueSize int
	Timeout   time.Duration
}

func loadInteractionConfig() (InteractionConfig, error) {
	queueSize := 64
	if override, err := parseOptionalIntEnv("INTERACTION_QUEUE_SIZE"); err != nil {
		return InteractionConfig{}, err
	} else if override != nil {
		if *override < 1 {
			queueSize = 1
		} else {
			queueSize = *override
		}
	}

	timeout, err := parseDurationEnv("INTERACTION_TIMEOUT", 10*time.Second)
	if err != nil {
		return InteractionConfig{}, err
	}

	return InteractionConfig{
		Endpoint:  strings.TrimSpace(os.Getenv("INTERACTION_LOG_URL")),
		AMQPURL:   strings.TrimSpace(os.Getenv("INTERACTION_AMQP_URL")),
		AMQPQueue: getEnvOrDefault("INTERACTION_AMQP_QUEUE", "travel_policy.interactions"),
		QueueSize: queueSize,
		Timeout:   timeout,
	}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level       string
	Development bool
}

// NewLogger 根据配置构建 zap 日志器。
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", c.Level, err)
	}

	cfg := zap.NewProductionConfig()
	if c.Development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	return cfg.Build()
}

func loadLogConfig() (LogConfig, error) {
	development, err := parseBoolEnv("LOG_DEVELOPMENT", false)
	if err != nil {
		return LogConfig{}, err
	}

	return LogConfig{
		Level:       strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info")),
		Development: development,
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
