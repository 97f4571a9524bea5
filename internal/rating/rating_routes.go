package rating

import (
	"hrms/internal/middleware"
	"hrms/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authn gin.HandlerFunc, rbacService middleware.RBACService) {
	ratings := r.Group("/ratings")
	ratings.Use(authn)
	{
		ratings.POST("", middleware.RBACAuthorize(rbacService, rbac.ResourceRating, rbac.ActionCreate), h.Create)
		ratings.GET("/given", middleware.RBACAuthorize(rbacService, rbac.ResourceRating, rbac.ActionRead), h.GetGiven)
		ratings.GET("/received", middleware.RBACAuthorize(rbacService, rbac.ResourceRating, rbac.ActionRead), h.GetReceived)
		ratings.GET("/averages", middleware.RBACAuthorize(rbacService, rbac.ResourceRating, rbac.ActionReadAll), h.GetMonthlyAverages)
	}
}
