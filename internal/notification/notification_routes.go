package notification

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService) {
	notifications := r.Group("/notifications")
	notifications.Use(authn)
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionRead), h.GetMy)
		notifications.PUT("/:id/read", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkRead)
		notifications.PUT("/read-all", middleware.RBACAuthorize(rbacService, rbac.ResourceNotification, rbac.ActionUpdate), h.MarkAllRead)
	}
}
