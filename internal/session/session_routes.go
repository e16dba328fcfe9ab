package session

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc) {
	a := r.Group("/auth")
	{
		a.POST("/login", middleware.RateLimitByIP(0.2, 5), handler.Login)
		a.POST("/refresh", middleware.RateLimitByIP(0.5, 5), handler.Refresh)
		a.POST("/logout", auth, handler.Logout)
		a.GET("/me", auth, middleware.RateLimitByUser(2, 5), handler.Me)
	}

	filters := r.Group("/filters", auth)
	{
		filters.GET("/:screen", handler.GetFilter)
		filters.PUT("/:screen", handler.SaveFilter)
	}
}
