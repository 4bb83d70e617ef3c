package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/togay-aytemiz/lumiso-sub014/internal/config"
	domainRepo "github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/logger"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/metrics"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/handler"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/middleware"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Billing    *handler.BillingHandler
	Payment    *handler.PaymentHandler
	Calculator *handler.CalculatorHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	TenantRepo      domainRepo.TenantRepository
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Gatherer serves /metrics; nil disables the endpoint
	Gatherer    prometheus.Gatherer
	HTTPMetrics *metrics.HTTP
}

// Setup creates the Gin router and registers all routes. Background work
// started for the router stops when ctx is done.
func Setup(ctx context.Context, h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(logger.GinMiddleware(logger.MiddlewareConfig{SkipPaths: []string{"/health", "/metrics"}}))
	router.Use(metrics.GinMiddleware(deps.HTTPMetrics))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	if deps.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware(deps.JWTManager))
	v1.Use(middleware.TenantMiddleware(deps.TenantRepo))

	// Per-tenant rate limiter
	rateLimiter := middleware.NewTenantRateLimiter(ctx, middleware.RateLimiterConfig{
		RequestsPerSecond: requestsPerSecond(deps.Cfg.RateLimit),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	v1.Use(rateLimiter.Middleware())
	v1.Use(middleware.Idempotency(middleware.IdempotencyConfig{Repo: deps.IdempotencyRepo}))

	registerProjectRoutes(v1, h)
	registerCalculatorRoutes(v1, h)

	return router
}

func registerProjectRoutes(v1 *gin.RouterGroup, h *Handlers) {
	projects := v1.Group("/projects/:id")
	{
		projects.GET("/billing/header", h.Billing.Header)
		projects.GET("/billing/services", h.Billing.Services)
		projects.GET("/billing/payments", h.Billing.Payments)
		projects.GET("/billing/deposit", h.Billing.Deposit)
		projects.PUT("/billing/deposit", h.Billing.UpdateDeposit)
		projects.GET("/billing/outstanding", h.Billing.Outstanding)

		projects.GET("/payments", h.Payment.List)
		projects.POST("/payments", h.Payment.Record)
	}
}

func registerCalculatorRoutes(v1 *gin.RouterGroup, h *Handlers) {
	calc := v1.Group("/billing")
	{
		calc.POST("/vat", h.Calculator.VAT)
		calc.POST("/deposit/preview", h.Calculator.DepositPreview)
	}
}

// requestsPerSecond turns "Requests per Duration seconds" into a rate
func requestsPerSecond(cfg config.RateLimitConfig) float64 {
	if cfg.Duration <= 0 {
		return float64(cfg.Requests)
	}
	return float64(cfg.Requests) / float64(cfg.Duration)
}
