package payrollimport

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/middleware"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	payroll := r.Group("/payroll")
	{
		payroll.POST("/upload",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "payroll_upload", "create"),
			handler.Upload,
		)
	}
}
