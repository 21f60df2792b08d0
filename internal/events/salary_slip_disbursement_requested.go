package events

import (
	"encoding/json"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka"

	"github.com/google/uuid"
)

const (
	SalarySlipDisbursementRequestedTopic = "payroll.salary-slip.disbursement.requested.v1"
	SalarySlipDisbursementRequestedType  = "salary_slip.disbursement_requested"
	SalarySlipDisbursementAggregate      = "salary_slip_batch"
)

// SalarySlipDisbursementRequestedEvent asks the consumer to render and email
// the listed slips on behalf of UserID.
type SalarySlipDisbursementRequestedEvent struct {
	EventType  string    `json:"event_type"`
	UserID     string    `json:"user_id"`
	SlipIDs    []string  `json:"slip_ids"`
	RequestID  string    `json:"request_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewSalarySlipDisbursementRequested(userID string, slipIDs []string, requestID string) SalarySlipDisbursementRequestedEvent {
	if slipIDs == nil {
		slipIDs = []string{}
	}
	return SalarySlipDisbursementRequestedEvent{
		EventType:  SalarySlipDisbursementRequestedType,
		UserID:     userID,
		SlipIDs:    slipIDs,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
	}
}

// OutboxEvent wraps the event in a pending outbox row keyed by the requesting user.
func (e SalarySlipDisbursementRequestedEvent) OutboxEvent() (kafka.OutboxEvent, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return kafka.OutboxEvent{}, err
	}
	return kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     e.RequestID,
		AggregateType: SalarySlipDisbursementAggregate,
		AggregateID:   e.UserID,
		EventType:     e.EventType,
		Topic:         SalarySlipDisbursementRequestedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}, nil
}
