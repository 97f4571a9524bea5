package holiday

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService) {
	holidays := r.Group("/holidays")
	holidays.Use(authn)
	{
		holidays.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceHoliday, rbac.ActionRead), h.GetByYear)
		holidays.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceHoliday, rbac.ActionCreate), h.Create)
		holidays.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceHoliday, rbac.ActionUpdate), h.Update)
		holidays.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceHoliday, rbac.ActionDelete), h.Delete)
	}
}
