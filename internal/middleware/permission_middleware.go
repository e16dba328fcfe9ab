package middleware

import (
	"net/http"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type PermissionStores interface {
	Store(sessionID string) *permission.Store
}

// RequirePermission lets the request through when the session holds any of
// the tokens. Admin roles always pass.
func RequirePermission(stores PermissionStores, tokens ...string) gin.HandlerFunc {
	required := strings.Join(tokens, "|")
	return func(c *gin.Context) {
		sessionID := c.GetString("session_id")
		if sessionID == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "missing auth context", nil)
			c.Abort()
			return
		}

		if !stores.Store(sessionID).HasAnyPermission(tokens...) {
			response.Error(c, http.StatusForbidden, apperror.CodeForbidden,
				"You do not have permission to perform this action",
				gin.H{"required": required},
			)
			c.Abort()
			return
		}
		c.Next()
	}
}
