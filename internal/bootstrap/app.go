package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"internship-backend/internal/analysis"
	"internship-backend/internal/applications"
	"internship-backend/internal/llm"
	"internship-backend/internal/llm/gateway"
	"internship-backend/internal/llm/gemini"
	"internship-backend/internal/shared/auth"
	"internship-backend/internal/shared/config"
	"internship-backend/internal/shared/server"
	"internship-backend/internal/shared/storage/db"
	"internship-backend/internal/shared/telemetry"
)

// App holds shared dependencies and the HTTP router built from them.
type App struct {
	Config              config.Config
	Router              *gin.Engine
	DB                  *sql.DB
	LLM                 llm.Client
	Gateway             *analysis.Gateway
	ApplicationsRepo    applications.Repo
	ApplicationsService *applications.Service
	Verifier            *auth.Verifier
}

// Build prepares every dependency and wires the router.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}

	client, err := BuildLLM(ctx, cfg)
	if err != nil {
		return nil, err
	}
	gw, err := analysis.NewGateway(client)
	if err != nil {
		return nil, err
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	verifier, err := auth.NewVerifier(cfg.AuthJWTSecret, !cfg.IsDevLike())
	if err != nil {
		return nil, err
	}

	var repo applications.Repo
	if sqlDB != nil {
		repo = &applications.PGRepo{DB: sqlDB}
	} else {
		repo = applications.NewMemoryRepo()
	}
	appSvc := applications.NewService(repo)

	app := &App{
		Config:              cfg,
		DB:                  sqlDB,
		LLM:                 client,
		Gateway:             gw,
		ApplicationsRepo:    repo,
		ApplicationsService: appSvc,
		Verifier:            verifier,
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:             cfg,
		AnalysisHandler:    analysis.NewHandler(gw),
		ApplicationHandler: applications.NewHandler(appSvc),
		Verifier:           verifier,
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":          cfg.Env,
		"llm_provider": client.Provider(),
		"llm_model":    client.Model(),
		"database":     sqlDB != nil,
	})
	return app, nil
}

// BuildLLM constructs the upstream client selected by LLM_PROVIDER.
func BuildLLM(ctx context.Context, cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		return gemini.NewClient(ctx, gemini.Options{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.LLMModel,
		})
	case config.ProviderGateway, "":
		return gateway.NewClient(gateway.Options{
			URL:     cfg.LLMGatewayURL,
			APIKey:  cfg.LLMAPIKey,
			Model:   cfg.LLMModel,
			Timeout: time.Duration(cfg.LLMTimeoutSeconds) * time.Second,
		})
	default:
		return nil, &config.Error{Key: "LLM_PROVIDER", Reason: fmt.Sprintf("unknown provider %q", cfg.LLMProvider)}
	}
}

// Close releases the database pool, if any.
func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_memory", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, &config.Error{Key: "DATABASE_URL", Reason: "is required outside dev"}
	}

	sqlDB, err := db.Open(ctx, cfg, db.RoleServer)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
		if err != nil {
			_ = sqlDB.Close()
		}
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.db_memory", map[string]any{"reason": err.Error()})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}
