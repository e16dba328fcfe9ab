package middleware

import (
	"net/http"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/debounce"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DebounceSearch delays requests carrying a `search` query. When a newer
// search from the same session and screen arrives first, the older request
// ends with 204 and never reaches the HR API.
func DebounceSearch(gate *debounce.Gate, screen string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if gate == nil || strings.TrimSpace(c.Query("search")) == "" {
			c.Next()
			return
		}

		owner := c.GetString("session_id")
		if owner == "" {
			owner = c.ClientIP()
		}

		ok, err := gate.Wait(c.Request.Context(), owner+"|"+screen)
		if err != nil || !ok {
			contextutil.GetLogger(c.Request.Context(), nil).Debug("search superseded",
				zap.String("screen", screen),
			)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
