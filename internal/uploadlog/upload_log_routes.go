package uploadlog

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/middleware"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	logs := r.Group("/upload-logs")
	logs.Use(middleware.RateLimitByUser(3, 10))
	{
		logs.GET("", middleware.RBACAuthorize(rbacService, "upload_log", "read"), handler.GetAll)
		logs.GET("/:id", middleware.RBACAuthorize(rbacService, "upload_log", "read"), handler.GetByID)
	}
}
