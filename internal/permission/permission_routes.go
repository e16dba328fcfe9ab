package permission

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	perms := r.Group("/permissions", auth)
	{
		perms.GET("", handler.Get)
		perms.POST("/refresh", handler.Refresh)
		perms.POST("/check", handler.Check)
	}
}
