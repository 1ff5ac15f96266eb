package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/drivelink/instructor-api/internal/middleware"
	"github.com/drivelink/instructor-api/internal/models"
	appErrors "github.com/drivelink/instructor-api/pkg/errors"
	"github.com/drivelink/instructor-api/pkg/response"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// requireUserID resolves the authenticated user ID or writes a 401 and
// returns the empty string.
func requireUserID(c *gin.Context) string {
	claims := claimsFromContext(c)
	if claims == nil || claims.UserID == "" {
		response.Error(c, appErrors.ErrUnauthorized)
		return ""
	}
	return claims.UserID
}
