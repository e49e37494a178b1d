package middleware

import (
	"context"

	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// userIDKey and roleKey hold the authenticated caller in the request context.
const (
	userIDKey = contextKey("userID")
	roleKey   = contextKey("role")
)

// WithIdentity returns a copy of ctx carrying the caller's id and role.
func WithIdentity(ctx context.Context, userID string, role domain.ActorRole) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

// GetRoleFromContext retrieves the authenticated caller's role.
func GetRoleFromContext(c *gin.Context) (domain.ActorRole, bool) {
	role, ok := c.Request.Context().Value(roleKey).(domain.ActorRole)
	if !ok || !role.Valid() {
		return "", false
	}
	return role, true
}
