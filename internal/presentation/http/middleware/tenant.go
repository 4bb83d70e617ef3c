package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/togay-aytemiz/lumiso-sub014/internal/domain/repository"
	infraRepo "github.com/togay-aytemiz/lumiso-sub014/internal/infrastructure/repository"
	"github.com/togay-aytemiz/lumiso-sub014/internal/observability/logger"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
	"go.uber.org/zap"
)

// TenantMiddleware resolves the tenant named by the access token and scopes
// the request context to it. Must run after AuthMiddleware.
func TenantMiddleware(tenantRepo repository.TenantRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := GetTenantID(c)
		if tenantID == uuid.Nil {
			response.BadRequest(c, "Tenant context required")
			c.Abort()
			return
		}

		tenant, err := tenantRepo.GetByID(c.Request.Context(), tenantID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if tenant == nil {
			response.NotFound(c, "Tenant not found")
			c.Abort()
			return
		}

		c.Set("tenant", tenant)

		// Tenant ID in the request context scopes services and repositories
		ctx := infraRepo.WithTenant(c.Request.Context(), tenant.ID)
		ctx = logger.WithLogger(ctx, logger.FromContext(ctx).With(zap.String("tenant_id", tenant.ID.String())))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetTenantID retrieves the tenant ID from gin context
func GetTenantID(c *gin.Context) uuid.UUID {
	tenantID, exists := c.Get("tenant_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := tenantID.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
