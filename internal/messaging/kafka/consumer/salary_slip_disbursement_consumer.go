package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/disbursement"
	"github.com/ibrahim77gh/salary-portal-backend/internal/events"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	DisbursementClaimPrefix = "disbursement:event:"
	claimTTL                = 24 * time.Hour
	claimProcessing         = "processing"
	claimDone               = "done"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeSalarySlipDisbursement runs until ctx is cancelled. Each outbox event
// is claimed in Redis before the job runs and marked done once it finishes.
// Only a done event is skipped on redelivery; a claim left in processing by a
// crashed consumer is resumed, and slips already sent are skipped by the job.
func ConsumeSalarySlipDisbursement(
	ctx context.Context,
	reader MessageReader,
	service disbursement.Service,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.salary_slip_disbursement")
	log.Info("salary slip disbursement consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("salary slip disbursement consumer stopped")
				return
			}
			log.Error("fetch salary slip disbursement message failed", zap.Error(err))
			continue
		}

		if !handleDisbursement(ctx, msg, service, rdb, log) {
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit salary slip disbursement message failed", zap.Error(err))
		}
	}
}

// handleDisbursement reports whether the message may be committed.
func handleDisbursement(
	ctx context.Context,
	msg kafkago.Message,
	service disbursement.Service,
	rdb *redis.Client,
	log *zap.Logger,
) bool {
	eventID := header(msg, "event_id")
	log = log.With(zap.String("event_id", eventID), zap.Int64("offset", msg.Offset))

	var event events.SalarySlipDisbursementRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode salary slip disbursement event failed", zap.Error(err))
		return true
	}

	claimKey := ""
	if rdb != nil && eventID != "" {
		claimKey = DisbursementClaimPrefix + eventID
		done, err := claimEvent(ctx, rdb, claimKey, log)
		if err != nil {
			log.Warn("claim disbursement event failed, processing unguarded", zap.Error(err))
			claimKey = ""
		}
		if done {
			log.Info("disbursement event already processed, skipping")
			return true
		}
	}

	jobCtx := contextutil.WithRequestID(ctx, event.RequestID)
	jobCtx = contextutil.WithUserID(jobCtx, event.UserID)
	jobCtx = contextutil.WithLogger(jobCtx, log.With(zap.String("request_id", event.RequestID)))

	summary, err := service.Disburse(jobCtx, disbursement.Job{
		UserID:    event.UserID,
		SlipIDs:   event.SlipIDs,
		RequestID: event.RequestID,
	})
	if err != nil {
		if claimKey != "" {
			// ctx may already be cancelled on shutdown
			releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
			if delErr := rdb.Del(releaseCtx, claimKey).Err(); delErr != nil {
				log.Error("release disbursement claim failed", zap.Error(delErr))
			}
			cancel()
		}
		if errors.Is(err, context.Canceled) {
			log.Info("salary slip disbursement interrupted", zap.Error(err))
		} else {
			log.Error("salary slip disbursement failed", zap.Error(err))
		}
		return false
	}

	if claimKey != "" {
		if err := rdb.Set(ctx, claimKey, claimDone, claimTTL).Err(); err != nil {
			log.Warn("mark disbursement event done failed", zap.Error(err))
		}
	}

	log.Info("salary slip disbursement processed",
		zap.String("user_id", event.UserID),
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
	)
	return true
}

// claimEvent reports whether the event has already been fully processed.
func claimEvent(ctx context.Context, rdb *redis.Client, key string, log *zap.Logger) (bool, error) {
	claimed, err := rdb.SetNX(ctx, key, claimProcessing, claimTTL).Result()
	if err != nil || claimed {
		return false, err
	}

	state, err := rdb.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		return false, err
	case state == claimDone:
		return true, nil
	}

	log.Info("resuming interrupted disbursement event")
	return false, nil
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}
