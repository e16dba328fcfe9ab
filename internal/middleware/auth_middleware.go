package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/domain"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/apperror"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/contextutil"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/response"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (*domain.SessionClaims, error)
}

type SessionResolver interface {
	Authenticate(ctx context.Context, claims *domain.SessionClaims) (domain.ActiveSession, error)
}

// AuthMiddleware verifies the gateway access token, resolves its session and
// puts the session's HR API token on the request context for upstream calls.
func AuthMiddleware(parser TokenParser, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found || tokenString == "" {
			if q := c.Query("access_token"); q != "" && c.Request.Method == http.MethodGet {
				tokenString = q
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Token not found", nil)
			c.Abort()
			return
		}

		claims, err := parser.Parse(tokenString)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		sess, err := sessions.Authenticate(c.Request.Context(), claims)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			if httpErr.Status == http.StatusInternalServerError {
				response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			} else {
				response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Session is no longer valid", nil)
			}
			c.Abort()
			return
		}

		c.Set("session_id", sess.ID)
		c.Set("user_id", sess.UserID)
		c.Set("employee_id", sess.EmployeeID)
		c.Set("role", sess.Role)

		ctx := c.Request.Context()
		ctx = contextutil.WithSessionID(ctx, sess.ID)
		ctx = contextutil.WithUserID(ctx, sess.UserID)
		ctx = upstream.WithToken(ctx, sess.UpstreamToken)
		ctx = contextutil.WithLogger(ctx, contextutil.GetLogger(ctx, nil).With(
			zap.String("user_id", sess.UserID),
			zap.String("session_id", sess.ID),
		))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
