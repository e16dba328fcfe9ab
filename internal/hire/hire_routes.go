package hire

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the onboarding flow. Candidate steps run before
// the candidate has an account and are only rate limited.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth gin.HandlerFunc, stores middleware.PermissionStores) {
	candidate := r.Group("/hire", middleware.RateLimitByIP(0.5, 5))
	{
		candidate.POST("/verify", handler.Verify)
		candidate.POST("/otp/send", middleware.RateLimitByIP(0.05, 3), handler.SendOTP)
		candidate.POST("/otp/verify", handler.VerifyOTP)
		candidate.POST("/register", handler.Register)
	}

	review := r.Group("/hire", auth, middleware.RequirePermission(stores, permission.TokenHireReview))
	{
		review.GET("/pending", handler.Pending)
		review.POST("/:id/review", handler.Review)
	}
}
