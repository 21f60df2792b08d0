package app

import (
	"database/sql"

	"github.com/ibrahim77gh/salary-portal-backend/internal/columnmapping"
	"github.com/ibrahim77gh/salary-portal-backend/internal/employee"
	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka"
	"github.com/ibrahim77gh/salary-portal-backend/internal/middleware"
	"github.com/ibrahim77gh/salary-portal-backend/internal/notification"
	"github.com/ibrahim77gh/salary-portal-backend/internal/payrollimport"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac"
	"github.com/ibrahim77gh/salary-portal-backend/internal/rbac/infra"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"
	"github.com/ibrahim77gh/salary-portal-backend/internal/uploadlog"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	cfg *config.Config,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	files storage.FileStorage,
	logger *zap.Logger,
) error {
	// --- Repositories ---
	columnMappingRepo := columnmapping.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	notificationRepo := notification.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	salarySlipRepo := salaryslip.NewRepository(gormDB)
	uploadLogRepo := uploadlog.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	columnMappingService := columnmapping.NewService(db, columnMappingRepo, logger)
	employeeService := employee.NewService(db, employeeRepo, logger)
	notificationService := notification.NewService(notificationRepo, rdb, logger)
	salarySlipService := salaryslip.NewServiceWithOutbox(db, salarySlipRepo, outboxRepo, files, logger)
	uploadLogService := uploadlog.NewService(uploadLogRepo, logger)
	importService := payrollimport.NewService(
		columnMappingService,
		uploadLogService,
		employeeService,
		salarySlipRepo,
		outboxRepo,
		logger,
	)

	// --- Handlers ---
	columnMappingHandler := columnmapping.NewHandler(columnMappingService, logger)
	employeeHandler := employee.NewHandler(employeeService, logger)
	importHandler := payrollimport.NewHandler(importService, cfg.HTTP.MaxUploadSize)
	notificationHandler := notification.NewHandler(notificationService)
	salarySlipHandler := salaryslip.NewHandlerWithRedis(salarySlipService, rdb, logger)
	uploadLogHandler := uploadlog.NewHandler(uploadLogService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequestID(),
		middleware.AuthMiddleware(cfg.JWT.Secret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(logger),
	)
	{
		columnmapping.RegisterRoutes(api, columnMappingHandler, rbacService)
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		notification.RegisterRoutes(api, notificationHandler, rbacService)
		payrollimport.RegisterRoutes(api, importHandler, rbacService)
		salaryslip.RegisterRoutes(api, salarySlipHandler, rbacService, rdb)
		uploadlog.RegisterRoutes(api, uploadLogHandler, rbacService)
	}

	return nil
}
