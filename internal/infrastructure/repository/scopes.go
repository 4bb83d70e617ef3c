package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ctxKey string

const (
	// TenantIDKey holds the studio the request acts for
	TenantIDKey ctxKey = "tenant_id"
	// SkipTenantScopeKey lets super admins read every studio's projects
	SkipTenantScopeKey ctxKey = "skip_tenant_scope"
)

// TenantScope limits project, service, payment and todo queries to the
// studio in ctx. Without a studio nothing matches.
func TenantScope(ctx context.Context) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if tenantScopeSkipped(ctx) {
			return db
		}
		tenantID, ok := GetTenantID(ctx)
		if !ok {
			return db.Where("1 = 0")
		}
		return db.Where("tenant_id = ?", tenantID)
	}
}

func tenantScopeSkipped(ctx context.Context) bool {
	skip, _ := ctx.Value(SkipTenantScopeKey).(bool)
	return skip
}

// WithSkipTenantScope marks ctx as belonging to a super admin
func WithSkipTenantScope(ctx context.Context, skip bool) context.Context {
	return context.WithValue(ctx, SkipTenantScopeKey, skip)
}

// WithTenant binds ctx to a studio
func WithTenant(ctx context.Context, tenantID uuid.UUID) context.Context {
	return context.WithValue(ctx, TenantIDKey, tenantID)
}

// GetTenantID returns the studio bound to ctx
func GetTenantID(ctx context.Context) (uuid.UUID, bool) {
	tenantID, ok := ctx.Value(TenantIDKey).(uuid.UUID)
	return tenantID, ok
}
