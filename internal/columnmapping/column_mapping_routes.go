package columnmapping

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/middleware"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	mappings := r.Group("/column-mappings")
	mappings.Use(middleware.RateLimitByUser(2, 10))
	{
		mappings.GET("", middleware.RBACAuthorize(rbacService, "column_mapping", "read"), handler.GetAll)
		mappings.GET("/active", middleware.RBACAuthorize(rbacService, "column_mapping", "read"), handler.GetActive)
		mappings.GET("/:id", middleware.RBACAuthorize(rbacService, "column_mapping", "read"), handler.GetByID)
		mappings.POST("", middleware.RBACAuthorize(rbacService, "column_mapping", "create"), handler.Create)
		mappings.PUT("/:id", middleware.RBACAuthorize(rbacService, "column_mapping", "update"), handler.Update)
		mappings.DELETE("/:id", middleware.RBACAuthorize(rbacService, "column_mapping", "delete"), handler.Delete)
		mappings.POST("/:id/activate", middleware.RBACAuthorize(rbacService, "column_mapping", "update"), handler.Activate)
	}
}
