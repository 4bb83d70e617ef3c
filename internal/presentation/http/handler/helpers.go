package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	infraRepo "github.com/togay-aytemiz/lumiso-sub014/internal/infrastructure/repository"
	"github.com/togay-aytemiz/lumiso-sub014/internal/presentation/http/dto/response"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRoles extracts the user roles from the Gin context
func GetUserRoles(c *gin.Context) []string {
	roles, exists := c.Get("user_roles")
	if !exists {
		return nil
	}
	list, _ := roles.([]string)
	return list
}

// IsSuperAdmin checks if the user has the super-admin role
func IsSuperAdmin(c *gin.Context) bool {
	for _, role := range GetUserRoles(c) {
		if role == "super-admin" {
			return true
		}
	}
	return false
}

// requestContext returns the request context, widened past the tenant scope
// for super admins
func requestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if IsSuperAdmin(c) {
		ctx = infraRepo.WithSkipTenantScope(ctx, true)
	}
	return ctx
}

// projectID parses the :id path parameter, answering 400 when it is not a UUID
func projectID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid project ID")
		return uuid.Nil, false
	}
	return id, true
}
