package producer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka"
	kafkaMock "github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka/mock"
	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	writeFn  func(msg kafkago.Message) error
	messages []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		if f.writeFn != nil {
			if err := f.writeFn(m); err != nil {
				return err
			}
		}
		f.messages = append(f.messages, m)
	}
	return nil
}

func header(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes with headers and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 10).Return([]kafka.OutboxEvent{{
			ID:            "evt-1",
			RequestID:     "req-1",
			AggregateType: "salary_slip_batch",
			AggregateID:   "user-1",
			EventType:     "salary_slip.disbursement_requested",
			Topic:         "payroll.salary-slip.disbursement.requested.v1",
			Payload:       []byte(`{}`),
		}}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 10)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		if assert.Len(t, writer.messages, 1) {
			msg := writer.messages[0]
			assert.Equal(t, "user-1", string(msg.Key))
			assert.Equal(t, "evt-1", header(msg, "event_id"))
			assert.Equal(t, "salary_slip.disbursement_requested", header(msg, "event_type"))
			assert.Equal(t, "salary_slip_batch", header(msg, "aggregate_type"))
			assert.Equal(t, "req-1", header(msg, "request_id"))
		}
	})

	t.Run("publish failure reschedules and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{writeFn: func(msg kafkago.Message) error {
			if header(msg, "event_id") == "evt-1" {
				return errors.New("broker down")
			}
			return nil
		}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "evt-1", Topic: "t"},
			{ID: "evt-2", Topic: "t"},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, zap.NewNop(), 50)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list failure is returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := kafkaMock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 5).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 5)
		assert.EqualError(t, err, "db down")
	})
}
