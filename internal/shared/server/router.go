package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"internship-backend/internal/analysis"
	"internship-backend/internal/applications"
	"internship-backend/internal/shared/config"
	"internship-backend/internal/shared/metrics"
	"internship-backend/internal/shared/server/middleware"
	"internship-backend/internal/shared/server/respond"
)

const analyzeRateGroup = "ANALYZE"

// Public analysis paths. The second mirrors the edge-function URL existing clients call.
var analyzePaths = []string{"/api/v1/analyze-resume", "/functions/v1/analyze-resume"}

// RouterDeps holds the handlers and collaborators the router mounts.
type RouterDeps struct {
	Config             config.Config
	AnalysisHandler    *analysis.Handler
	ApplicationHandler *applications.Handler
	Verifier           middleware.TokenVerifier
	Limiter            *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORSRoutes(cfg.CORSAllowOrigin, analyzePaths...),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.AnalysisHandler != nil {
		limit := middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				analyzeRateGroup: {Rate: cfg.AnalyzeRatePerSec, Burst: cfg.AnalyzeBurst},
			},
			DefaultGroup: analyzeRateGroup,
			Limiter:      deps.Limiter,
		})
		deps.AnalysisHandler.RegisterRoutes(api.Group("", limit))
		deps.AnalysisHandler.RegisterRoutes(r.Group("/functions/v1", limit))
	}

	authed := api.Group("", middleware.Auth(deps.Verifier, cfg.IsDevLike()))
	registerMeRoutes(authed)
	if deps.ApplicationHandler != nil {
		deps.ApplicationHandler.RegisterRoutes(authed)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
