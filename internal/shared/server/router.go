package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-ats/internal/analyses"
	"resume-ats/internal/services/health"
	"resume-ats/internal/shared/config"
	"resume-ats/internal/shared/metrics"
	"resume-ats/internal/shared/server/middleware"
	"resume-ats/internal/shared/server/respond"
)

const (
	rateGroupAnalyze = "ANALYZE"
	rateGroupDefault = "DEFAULT"
)

// RouterDeps are the handlers and services the router mounts.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	Health          *health.Service
	RateLimiter     *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				rateGroupAnalyze: {Rate: deps.Config.AnalyzeLimit.Rate, Burst: deps.Config.AnalyzeLimit.Burst},
				rateGroupDefault: {Rate: deps.Config.DefaultLimit.Rate, Burst: deps.Config.DefaultLimit.Burst},
			},
			DefaultGroup: rateGroupDefault,
			GroupFor:     rateGroupFor,
			Limiter:      deps.RateLimiter,
		}),
	)

	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, nil)
	}

	r.GET("/", banner)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, healthSvc.Status(c.Request.Context()))
	})
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "route not found", nil)
	})
	return r
}

func rateGroupFor(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && c.FullPath() == "/api/v1/analyze" {
		return rateGroupAnalyze
	}
	return rateGroupDefault
}

func banner(c *gin.Context) {
	respond.OK(c, gin.H{
		"service": "ATS Resume Analyzer",
		"version": "1.0.0",
		"endpoints": gin.H{
			"health":   "GET /api/v1/health",
			"analyze":  "POST /api/v1/analyze",
			"analyses": "GET /api/v1/analyses",
			"analysis": "GET /api/v1/analyses/:id",
			"metrics":  "GET /metrics",
		},
	})
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
