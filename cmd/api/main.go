package main

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/app"
	"github.com/ibrahim77gh/salary-portal-backend/internal/bootstrap"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := cfg.ValidateAPI(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	apperror.Init()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// build dependency + routes
	cleanup, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(r, cfg.HTTP, bootstrap.NewStdoutAuditLogger())
}
