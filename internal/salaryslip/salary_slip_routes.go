package salaryslip

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/middleware"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService rbac.Service,
	rdb ...*redis.Client,
) {
	var redisClient *redis.Client
	if len(rdb) > 0 {
		redisClient = rdb[0]
	}

	slips := r.Group("/salary-slips")
	{
		slips.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_slip", "read"),
			handler.GetAll,
		)
		slips.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "salary_slip", "read"),
			handler.GetByID,
		)
		slips.GET("/:id/pdf",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary_slip", "read"),
			handler.DownloadPDF,
		)
		slips.POST("",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary_slip", "create"),
			handler.Create,
		)
		slips.POST("/disburse",
			middleware.RateLimitByUser(0.2, 2),
			middleware.RBACAuthorize(rbacService, "salary_slip", "disburse"),
			middleware.Idempotency(redisClient),
			handler.Disburse,
		)
		slips.PUT("/:id",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "salary_slip", "update"),
			handler.Update,
		)
		slips.DELETE("/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "salary_slip", "delete"),
			handler.Delete,
		)
	}
}
