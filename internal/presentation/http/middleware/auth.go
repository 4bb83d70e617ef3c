package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/apperror"
	"github.com/togay-aytemiz/lumiso-sub014/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. The token's tenant
// is set as tenant_id for TenantMiddleware to resolve.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Error(c, apperror.ErrTokenExpired)
			} else {
				response.Error(c, apperror.ErrInvalidToken)
			}
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("tenant_id", claims.TenantID)
		c.Set("user_roles", claims.Roles)

		c.Next()
	}
}

// RequireRole creates a middleware that requires one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRoles, exists := c.Get("user_roles")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		userRolesList, ok := userRoles.([]string)
		if !ok {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		for _, userRole := range userRolesList {
			for _, requiredRole := range roles {
				if userRole == requiredRole {
					c.Next()
					return
				}
			}
		}

		response.Forbidden(c, "Insufficient role privileges")
		c.Abort()
	}
}
