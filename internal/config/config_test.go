package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("AI_PROVIDER", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("INTERACTION_QUEUE_SIZE", "")
	t.Setenv("INTERACTION_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.AI.Provider != ProviderGemini {
		t.Fatalf("unexpected provider: %s", cfg.AI.Provider)
	}
	if cfg.AI.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("unexpected gemini model: %s", cfg.AI.GeminiModel)
	}
	if cfg.Interaction.QueueSize != 64 || cfg.Interaction.Timeout != 10*time.Second {
		t.Fatalf("unexpected interaction config: %+v", cfg.Interaction)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "*" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Log.Level != "info" {
		t.Fatalf("unexpected log level: %s", cfg.Log.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"PORT":                   "80 80",
		"ARK_TEMPERATURE":        "hot",
		"INTERACTION_QUEUE_SIZE": "many",
		"INTERACTION_TIMEOUT":    "soon",
		"LOG_DEVELOPMENT":        "maybe",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%q", key, value)
			}
		})
	}
}

func TestGeminiKeyFallsBackToAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.GeminiAPIKey != "legacy-key" {
		t.Fatalf("expected API_KEY fallback, got %q", cfg.AI.GeminiAPIKey)
	}
}

func TestAIConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     AIConfig
		wantErr bool
	}{
		{name: "gemini missing key", cfg: AIConfig{Provider: ProviderGemini}, wantErr: true},
		{name: "gemini ok", cfg: AIConfig{Provider: ProviderGemini, GeminiAPIKey: "k"}},
		{name: "ark missing model", cfg: AIConfig{Provider: ProviderArk, APIKey: "k"}, wantErr: true},
		{name: "ark aksk", cfg: AIConfig{Provider: ProviderArk, Model: "m", AccessKey: "a", SecretKey: "s"}},
		{name: "mock", cfg: AIConfig{Provider: ProviderMock}},
		{name: "unknown", cfg: AIConfig{Provider: "openai"}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLogConfigNewLogger(t *testing.T) {
	if _, err := (LogConfig{Level: "debug"}).NewLogger(); err != nil {
		t.Fatalf("NewLogger err: %v", err)
	}
	if _, err := (LogConfig{Level: "loud"}).NewLogger(); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestAllowedOriginsList(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, ,http://b.example")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if len(cfg.Server.AllowedOrigins) != 2 || cfg.Server.AllowedOrigins[1] != "http://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
}
