package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ibrahim77gh/salary-portal-backend/internal/disbursement"
	"github.com/ibrahim77gh/salary-portal-backend/internal/events"
	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka/consumer"
	"github.com/ibrahim77gh/salary-portal-backend/internal/notification"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/connection"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/mailer"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer processes salary slip disbursement jobs until SIGINT or SIGTERM.
// Shutdown stops an in-flight job between slips; its message stays uncommitted.
func RunConsumer(cfg *config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, cfg.Database.MaxRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	redisClient, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Redis.MaxRetries)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	var files storage.FileStorage
	if cfg.Storage.Enabled {
		local, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return err
		}
		files = local
	}

	renderer, err := disbursement.NewPDFRenderer()
	if err != nil {
		return err
	}

	notificationService := notification.NewService(notification.NewRepository(gormDB), redisClient, zap.L())
	disbursementService := disbursement.NewService(
		salaryslip.NewRepository(gormDB),
		notificationService,
		mailer.New(cfg.SMTP, zap.L()),
		renderer,
		files,
		disbursement.Config{From: cfg.SMTP.From},
		zap.L(),
	)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          events.SalarySlipDisbursementRequestedTopic,
		GroupID:        cfg.Kafka.DisbursementGID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeSalarySlipDisbursement(ctx, reader, disbursementService, redisClient, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
