package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/services/health"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/metrics"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
)

// APIPrefix is the path every API route lives under.
const APIPrefix = "/api/v1"

const authRateLimitGroup = "AUTH"

// RouteRegistrar is implemented by every feature handler.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// PublicRoutes is implemented by handlers that serve routes without login.
type PublicRoutes interface {
	PublicPaths(prefix string) []string
}

// RouterDeps carries the handlers and verifier the router mounts.
type RouterDeps struct {
	Config   config.Config
	Verifier middleware.TokenVerifier
	Handlers []RouteRegistrar
	// RateLimiter is optional; a fresh limiter is used when nil.
	RateLimiter *middleware.RateLimiter
	// Health is optional; nil reports ok with no dependency checks.
	Health *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	public := []string{APIPrefix + "/health"}
	for _, h := range deps.Handlers {
		if p, ok := h.(PublicRoutes); ok {
			public = append(public, p.PublicPaths(APIPrefix)...)
		}
	}

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		metrics.GinMiddleware(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	r.GET("/metrics", metrics.Handler())

	api := r.Group(APIPrefix)
	api.Use(
		middleware.Auth(deps.Verifier, public...),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				authRateLimitGroup: {Rate: deps.Config.AuthRateLimitRPS, Burst: deps.Config.AuthRateLimitBurst},
			},
			GroupFor: rateLimitGroup,
			Limiter:  deps.RateLimiter,
		}),
	)
	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService()
	}
	api.GET("/health", func(c *gin.Context) {
		report := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})
	for _, h := range deps.Handlers {
		h.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup throttles the credential endpoints.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	path := strings.TrimPrefix(c.Request.URL.Path, APIPrefix)
	switch path {
	case "/auth/login", "/auth/register", "/auth/google", "/auth/linkedin", "/auth/token/refresh":
		return authRateLimitGroup
	default:
		return ""
	}
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
