package attendance

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService) {
	attendances := r.Group("/attendance")
	attendances.Use(authn)
	{
		attendances.POST("/check-in", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.CheckIn)
		attendances.POST("/check-out", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionCreate), h.CheckOut)
		attendances.POST("/mark-status", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionMark), h.MarkStatus)
		attendances.GET("/my", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionRead), h.GetMy)
		attendances.GET("/user/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionReadAll), h.GetByUser)
		attendances.GET("/day", middleware.RBACAuthorize(rbacService, rbac.ResourceAttendance, rbac.ActionReadAll), h.GetByDate)
	}
}
