package viewstate

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/debounce"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, search *debounce.Gate) {
	views := r.Group("/views", auth)
	{
		views.GET("/leaves", middleware.DebounceSearch(search, "views.leaves"), handler.Leaves)
		views.GET("/leaves/export", middleware.RateLimitByUser(0.2, 2), handler.ExportLeaves)
		views.GET("/reimbursements", middleware.DebounceSearch(search, "views.reimbursements"), handler.Reimbursements)
		views.GET("/reimbursements/export", middleware.RateLimitByUser(0.2, 2), handler.ExportReimbursements)
	}
}
