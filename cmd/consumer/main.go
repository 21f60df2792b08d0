package main

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/app"
	"github.com/ibrahim77gh/salary-portal-backend/internal/bootstrap"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"

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

	if err := cfg.ValidateConsumer(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	if err := app.RunConsumer(cfg); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
