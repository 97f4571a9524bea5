package leave

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService, rdb *redis.Client) {
	leaves := r.Group("/leave")
	leaves.Use(authn)
	{
		leaves.POST("/apply",
			middleware.Idempotency(rdb),
			middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionCreate),
			h.Apply,
		)
		leaves.GET("/my", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionRead), h.GetMy)
		leaves.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReadAll), h.GetAll)
		leaves.GET("/pending", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReview), h.GetPending)
		leaves.PUT("/:id/approve", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReview), h.Approve)
		leaves.PUT("/:id/reject", middleware.RBACAuthorize(rbacService, rbac.ResourceLeave, rbac.ActionReview), h.Reject)
	}
}
