package app

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/connection"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the API's infrastructure and mounts every feature module.
// The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg *config.Config) (func(), error) {
	logger := zap.L().Named("app.api")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.Database.MaxRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	logger.Info("redis connection established")

	cleanup := func() {
		_ = redisClient.Close()
		_ = sqlDB.Close()
	}

	var files storage.FileStorage
	if cfg.Storage.Enabled {
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			cleanup()
			return nil, err
		}
		files = local
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if err := registerModules(router, cfg, sqlDB, gormDB, redisClient, files, zap.L()); err != nil {
		cleanup()
		return nil, err
	}

	return cleanup, nil
}
