package notification

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/middleware"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService rbac.Service) {
	notifications := r.Group("/notifications")
	notifications.Use(middleware.RateLimitByUser(5, 20))
	{
		notifications.GET("", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetAll)
		notifications.GET("/unread-count", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.UnreadCount)
		notifications.POST("/mark-all-read", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.MarkAllRead)
		notifications.GET("/:id", middleware.RBACAuthorize(rbacService, "notification", "read"), handler.GetByID)
		notifications.PATCH("/:id", middleware.RBACAuthorize(rbacService, "notification", "update"), handler.Update)
	}
}
