package mailer

import (
	"context"
	"errors"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"
	"go.uber.org/zap"
)

var (
	ErrNoRecipient  = errors.New("recipient address is empty")
	ErrMailDisabled = errors.New("smtp is disabled, mail was not sent")
)

type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

type Message struct {
	From        string
	To          string
	Subject     string
	Body        string
	Attachments []Attachment
}

//go:generate mockgen -source=mailer.go -destination=mock/mailer_mock.go -package=mock
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns an SMTP mailer, or a mailer that rejects every message when SMTP
// is disabled.
func New(cfg config.SMTPConfig, logger ...*zap.Logger) Mailer {
	l := zap.L().Named("mailer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("mailer")
	}
	if !cfg.Enabled || cfg.Host == "" {
		l.Warn("smtp disabled, outgoing mail will be rejected")
		return &noopMailer{logger: l}
	}
	return &smtpMailer{cfg: cfg, logger: l}
}

type noopMailer struct {
	logger *zap.Logger
}

func (m *noopMailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}
	m.logger.Warn("mail not sent",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("attachments", len(msg.Attachments)),
	)
	return ErrMailDisabled
}
