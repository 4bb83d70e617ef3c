package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/togay-aytemiz/lumiso-sub014/internal/application/service"
	"github.com/togay-aytemiz/lumiso-sub014/internal/config"
	"github.com/togay-aytemiz/lumiso-sub014/internal/infrastructure/database"
	"github.com/togay-aytemiz/lumiso-sub014/internal/infrastructure/repository"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/logger"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/metrics"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/handler"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/routes"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log, err := logger.New(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	// Set Gin mode based on environment
	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	if cfg.Billing.SeedTenantSlug != "" {
		seedTenant(ctx, log, db, cfg, jwtManager)
	}

	// Metrics registry
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	billingMetrics := metrics.NewBilling(registry)
	httpMetrics := metrics.NewHTTP(registry)

	// Initialize repositories
	tenantRepo := repository.NewTenantRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	projectServiceRepo := repository.NewProjectServiceRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	todoRepo := repository.NewTodoRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	billingService := service.NewBillingService(
		projectRepo,
		projectServiceRepo,
		paymentRepo,
		todoRepo,
		tenantRepo,
		billingMetrics,
		cfg.Billing.DefaultCurrency,
	)
	paymentService := service.NewPaymentService(projectRepo, paymentRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Billing:    handler.NewBillingHandler(billingService),
		Payment:    handler.NewPaymentHandler(paymentService),
		Calculator: handler.NewCalculatorHandler(),
	}

	deps := &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		TenantRepo:      tenantRepo,
		IdempotencyRepo: idempotencyRepo,
		HTTPMetrics:     httpMetrics,
	}
	if cfg.Metrics.Enabled {
		deps.Gatherer = registry
	}

	// Setup routes
	router := routes.Setup(ctx, handlers, deps)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server",
			zap.String("service", cfg.App.Name),
			zap.String("port", port),
			zap.String("env", cfg.App.Env),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
}

// seedTenant makes sure the configured tenant exists. Outside production it
// also logs an access token for that tenant so the API can be tried locally.
func seedTenant(ctx context.Context, log *zap.Logger, db *gorm.DB, cfg *config.Config, jwtManager *utils.JWTManager) {
	slug := utils.Slugify(cfg.Billing.SeedTenantSlug)
	name := cfg.Billing.SeedTenantName
	if name == "" {
		name = slug
	}

	tenant, err := database.SeedTenant(ctx, db, slug, name, cfg.Billing.DefaultCurrency)
	if err != nil {
		log.Warn("failed to seed tenant", zap.Error(err))
		return
	}
	log.Info("tenant ready", zap.String("tenant_id", tenant.ID.String()), zap.String("slug", tenant.Slug))

	if cfg.App.IsProduction() {
		return
	}
	token, err := jwtManager.GenerateAccessToken(uuid.New(), tenant.ID, []string{"owner"})
	if err != nil {
		log.Warn("failed to issue development token", zap.Error(err))
		return
	}
	log.Info("development access token", zap.String("token", token))
}
