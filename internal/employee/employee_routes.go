package employee

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/debounce"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	search *debounce.Gate,
) {
	employees := r.Group("/employees", auth)
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.DebounceSearch(search, "employees"),
			handler.List,
		)
		employees.GET("/me", handler.Me)
		employees.PATCH("/me", handler.UpdateMe)
		employees.GET("/me/dashboard", handler.Dashboard)
		employees.GET("/:id", handler.GetByID)
		employees.GET("/:id/:section", handler.Section)
	}
}
