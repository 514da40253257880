package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderGateway = "gateway"
	ProviderGemini  = "gemini"

	defaultGatewayURL   = "https://ai.gateway.lovable.dev/v1/chat/completions"
	defaultGatewayModel = "google/gemini-2.5-flash"
	defaultGeminiModel  = "gemini-2.5-flash"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	DBPool          PoolConfig

	LLMProvider       string
	LLMGatewayURL     string
	LLMAPIKey         string
	LLMModel          string
	GeminiAPIKey      string
	LLMTimeoutSeconds int

	AuthJWTSecret string

	LogFormat string
	LogLevel  string

	AnalyzeRatePerSec float64
	AnalyzeBurst      int
}

// PoolConfig carries DB_* overrides for the application store pool.
// Zero fields leave the per-process default in place.
type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
}

// Error reports a missing or invalid configuration value.
type Error struct {
	Key    string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("config %s: %s", e.Key, e.Reason)
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	provider := normalizeProvider(getEnv("LLM_PROVIDER", ProviderGateway))
	model := getEnv("LLM_MODEL", "")
	if model == "" {
		model = defaultModel(provider)
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "*")),
		DatabaseURL:       dbURL,
		DBPool:            loadPoolConfig(),
		LLMProvider:       provider,
		LLMGatewayURL:     getEnv("LLM_GATEWAY_URL", defaultGatewayURL),
		LLMAPIKey:         getEnv("LLM_API_KEY", os.Getenv("LOVABLE_API_KEY")),
		LLMModel:          model,
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		LLMTimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 0),
		AuthJWTSecret:     getEnv("AUTH_JWT_SECRET", ""),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "json")),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		AnalyzeRatePerSec: getEnvFloat("ANALYZE_RATE_PER_SEC", 0.5),
		AnalyzeBurst:      getEnvInt("ANALYZE_BURST", 5),
	}
}

// Validate checks the settings the service cannot start without.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if strings.TrimSpace(c.GeminiAPIKey) == "" {
			return &Error{Key: "GEMINI_API_KEY", Reason: "is required when LLM_PROVIDER=gemini"}
		}
	default:
		if strings.TrimSpace(c.LLMAPIKey) == "" {
			return &Error{Key: "LLM_API_KEY", Reason: "is required"}
		}
		if strings.TrimSpace(c.LLMGatewayURL) == "" {
			return &Error{Key: "LLM_GATEWAY_URL", Reason: "is required"}
		}
	}
	if strings.TrimSpace(c.LLMModel) == "" {
		return &Error{Key: "LLM_MODEL", Reason: "is required"}
	}
	if c.Env == "production" && strings.TrimSpace(c.AuthJWTSecret) == "" {
		return &Error{Key: "AUTH_JWT_SECRET", Reason: "is required in production"}
	}
	return nil
}

// IsDevLike reports whether the environment allows development shortcuts.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

func loadEnvFiles(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// Existing environment variables win over file values.
		_ = godotenv.Load(path)
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, raw, def)
		return def
	}
	return v
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v < 0 {
		log.Printf("invalid %s=%q, using %s", key, raw, def)
		return def
	}
	return v
}

func loadPoolConfig() PoolConfig {
	return PoolConfig{
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 0),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 0),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 0),
		ConnMaxIdleTime: getEnvDuration("DB_CONN_MAX_IDLE_TIME", 0),
		PingTimeout:     getEnvDuration("DB_PING_TIMEOUT", 0),
	}
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %g", key, raw, def)
		return def
	}
	return v
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ProviderGemini, "google":
		return ProviderGemini
	default:
		return ProviderGateway
	}
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return defaultGeminiModel
	}
	return defaultGatewayModel
}
