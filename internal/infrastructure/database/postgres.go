package database

import (
	"context"
	"fmt"
	"time"

	"github.com/togay-aytemiz/lumiso-sub014/internal/config"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.LogSQL {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&entity.Tenant{},

		// Catalog and projects
		&entity.Service{},
		&entity.Project{},
		&entity.ProjectService{},
		&entity.Todo{},

		// Ledger
		&entity.Payment{},

		// System entities
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedTenant creates the tenant identified by slug unless it already exists.
// It returns the stored tenant either way.
func SeedTenant(ctx context.Context, db *gorm.DB, slug, name, currency string) (*entity.Tenant, error) {
	var tenant entity.Tenant
	err := db.WithContext(ctx).
		Where(entity.Tenant{Slug: slug}).
		Attrs(entity.Tenant{Name: name, Settings: entity.TenantSettings{Currency: currency}}).
		FirstOrCreate(&tenant).Error
	if err != nil {
		return nil, fmt.Errorf("failed to seed tenant %q: %w", slug, err)
	}
	return &tenant, nil
}
