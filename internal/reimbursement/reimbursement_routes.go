package reimbursement

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/debounce"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	auth gin.HandlerFunc,
	stores middleware.PermissionStores,
	search *debounce.Gate,
	rdb *redis.Client,
) {
	rb := r.Group("/reimbursements", auth)
	{
		rb.GET("", middleware.DebounceSearch(search, "reimbursements"), handler.List)
		rb.POST("", middleware.Idempotency(rdb), handler.Create)
		rb.GET("/:id", handler.GetByID)
		rb.POST("/:id/status",
			middleware.RequirePermission(stores,
				permission.TokenReimbursementsApprove,
				permission.TokenReimbursementsUpdateStatus,
			),
			handler.UpdateStatus,
		)
		rb.POST("/:id/photo", handler.UploadPhoto)
	}
}
