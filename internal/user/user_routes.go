package user

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService) {
	users := r.Group("/users")
	users.Use(authn)
	{
		users.GET("/me", h.GetMe)
		users.GET("", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionReadAll), h.GetAll)
		users.GET("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionRead), h.GetByID)
		users.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionCreate), h.Create)
		users.PUT("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionUpdate), h.Update)
		users.DELETE("/:id", middleware.RBACAuthorize(rbacService, rbac.ResourceUser, rbac.ActionDelete), h.Deactivate)
	}
}
