package notification

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	n := r.Group("/notifications", auth)
	{
		n.GET("", handler.List)
		n.GET("/unread-count", handler.UnreadCount)
		n.GET("/stream", handler.Stream)
		n.POST("/read-all", handler.MarkAllRead)
		n.POST("/:id/read", handler.MarkRead)
		n.DELETE("/:id", handler.Delete)
	}
}
