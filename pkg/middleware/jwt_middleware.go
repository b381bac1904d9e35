package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"storefront/pkg/utils"
)

func JWTAuthMiddleware(jwt *utils.JWTManager) gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := jwt.ValidateToken(tokenString)
		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(utils.ContextUserID, claims.Subject)
		c.Set(utils.ContextRole, claims.Role)
		c.Next()
	}
}

// RoleSource reports the role an account holds now.
type RoleSource interface {
	CurrentRole(ctx context.Context, accountID uuid.UUID) (string, error)
}

// RoleMiddleware checks the token's role claim and then the stored role,
// which SetRole may have changed after the token was issued.
func RoleMiddleware(requiredRole string, roles RoleSource) gin.HandlerFunc {

	return func(c *gin.Context) {
		id, ok := utils.CurrentUserID(c)
		if !ok || c.GetString(utils.ContextRole) != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		role, err := roles.CurrentRole(c.Request.Context(), id)
		if err != nil && !errors.Is(err, utils.ErrAccountNotFound) {
			utils.HandleServiceError(c, err)
			c.Abort()
			return
		}
		if role != requiredRole {
			utils.RespondError(c, http.StatusForbidden, "Forbidden: insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
