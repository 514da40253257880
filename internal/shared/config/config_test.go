package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_API_KEY", "")
	t.Setenv("LOVABLE_API_KEY", "legacy-key")
	t.Setenv("CORS_ALLOW_ORIGINS", "")

	cfg := Load()
	if cfg.LLMProvider != ProviderGateway {
		t.Fatalf("expected gateway provider, got %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != defaultGatewayModel {
		t.Fatalf("expected default model, got %q", cfg.LLMModel)
	}
	if cfg.LLMAPIKey != "legacy-key" {
		t.Fatalf("expected LOVABLE_API_KEY fallback, got %q", cfg.LLMAPIKey)
	}
	if len(cfg.CORSAllowOrigin) != 1 || cfg.CORSAllowOrigin[0] != "*" {
		t.Fatalf("expected wildcard CORS, got %v", cfg.CORSAllowOrigin)
	}
}

func TestLoadGeminiDefaultModel(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "google")
	t.Setenv("LLM_MODEL", "")

	cfg := Load()
	if cfg.LLMProvider != ProviderGemini {
		t.Fatalf("expected gemini provider, got %q", cfg.LLMProvider)
	}
	if cfg.LLMModel != defaultGeminiModel {
		t.Fatalf("expected %q, got %q", defaultGeminiModel, cfg.LLMModel)
	}
}

func TestValidateMissingCredential(t *testing.T) {
	cfg := Config{LLMProvider: ProviderGateway, LLMGatewayURL: defaultGatewayURL, LLMModel: "m", Env: "dev"}
	err := cfg.Validate()
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if cfgErr.Key != "LLM_API_KEY" {
		t.Fatalf("unexpected key %q", cfgErr.Key)
	}

	cfg = Config{LLMProvider: ProviderGemini, LLMModel: "m", Env: "dev"}
	if err := cfg.Validate(); !errors.As(err, &cfgErr) || cfgErr.Key != "GEMINI_API_KEY" {
		t.Fatalf("expected GEMINI_API_KEY error, got %v", err)
	}
}

func TestValidateProductionNeedsJWTSecret(t *testing.T) {
	cfg := Config{LLMProvider: ProviderGateway, LLMGatewayURL: "http://x", LLMAPIKey: "k", LLMModel: "m", Env: "production"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error without AUTH_JWT_SECRET")
	}
	cfg.AuthJWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadPoolOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "7")
	t.Setenv("DB_MAX_IDLE_CONNS", "3")
	t.Setenv("DB_CONN_MAX_LIFETIME", "20m")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "45s")
	t.Setenv("DB_PING_TIMEOUT", "1s")

	pool := Load().DBPool
	want := PoolConfig{
		MaxOpenConns:    7,
		MaxIdleConns:    3,
		ConnMaxLifetime: 20 * time.Minute,
		ConnMaxIdleTime: 45 * time.Second,
		PingTimeout:     time.Second,
	}
	if pool != want {
		t.Fatalf("expected %+v, got %+v", want, pool)
	}
}

func TestLoadPoolIgnoresInvalidValues(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("DB_MAX_IDLE_CONNS", "")
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")
	t.Setenv("DB_CONN_MAX_IDLE_TIME", "-5s")
	t.Setenv("DB_PING_TIMEOUT", "")

	if pool := Load().DBPool; pool != (PoolConfig{}) {
		t.Fatalf("expected zero pool config, got %+v", pool)
	}
}
