package leave

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	stores middleware.PermissionStores,
) {
	reviewer := middleware.RequirePermission(stores,
		permission.TokenLeaveApprove,
		permission.TokenLeaveReject,
		permission.TokenLeaveViewAll,
	)

	leaves := r.Group("/leaves", auth)
	{
		leaves.GET("", handler.List)
		leaves.POST("", handler.Create)
		leaves.GET("/approvals", reviewer, handler.Approvals)
		leaves.GET("/team", handler.Team)
		leaves.GET("/upcoming", handler.Upcoming)
		leaves.GET("/balance", handler.Balance)
		leaves.GET("/statistics", handler.Statistics)
		leaves.GET("/calendar", handler.Calendar)
		leaves.GET("/:id", handler.GetByID)
		leaves.POST("/:id/approve", middleware.RequirePermission(stores, permission.TokenLeaveApprove), handler.Approve)
		leaves.POST("/:id/reject", middleware.RequirePermission(stores, permission.TokenLeaveReject), handler.Reject)
		leaves.POST("/:id/cancel", handler.Cancel)
	}
}
