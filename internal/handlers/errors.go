package handlers

import (
	"log/slog"
	"net/http"

	"github.com/dteedee/MEDIX-sub004/internal/apperrors"
	"github.com/dteedee/MEDIX-sub004/internal/core/domain"
	"github.com/dteedee/MEDIX-sub004/internal/dto"
	"github.com/dteedee/MEDIX-sub004/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError maps err onto the client-facing taxonomy. The wrapped detail
// only goes to the log; clients get the taxonomy message.
func respondError(c *gin.Context, logger *slog.Logger, err error, action string) {
	class := apperrors.Classify(err)
	if class.Code == apperrors.CodeInternal {
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
	} else {
		logger.Warn("Rejected request to "+action, slog.String("code", string(class.Code)), slog.String("error", err.Error()))
	}
	c.JSON(class.Status, dto.ErrorResponse{
		Code:       string(class.Code),
		MessageKey: class.MessageKey,
		Message:    class.Message,
	})
}

// respondBindError reports a malformed body or query.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:       string(apperrors.CodeValidation),
		MessageKey: "common.validation_error",
		Message:    "Invalid request format: " + err.Error(),
	})
}

// requireCaller returns the authenticated caller or writes 401.
func requireCaller(c *gin.Context, logger *slog.Logger) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return userID, true
}

// requireIdentity returns the authenticated caller and role or writes 401.
func requireIdentity(c *gin.Context, logger *slog.Logger) (string, domain.ActorRole, bool) {
	userID, ok := requireCaller(c, logger)
	if !ok {
		return "", "", false
	}
	role, ok := middleware.GetRoleFromContext(c)
	if !ok {
		logger.Error("Role not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return userID, role, true
}
