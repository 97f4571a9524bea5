package remuneration

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService) {
	remunerations := r.Group("/remuneration")
	remunerations.Use(authn)
	{
		remunerations.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceRemuneration, rbac.ActionRead), h.GetMonthlySummary)
		remunerations.GET("/export", middleware.RBACAuthorize(rbacService, rbac.ResourceRemuneration, rbac.ActionRead), h.Export)
	}
}
