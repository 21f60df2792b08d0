// Package disbursement renders pending salary slips to PDF and emails them to
// employees, reporting the outcome to the requesting user as notifications.
package disbursement

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/notification"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/mailer"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrSlipNotFound    = errors.New("salary slip not found")
	ErrEmployeeMissing = errors.New("salary slip has no employee")
	ErrEmployeeNoEmail = errors.New("employee has no email address")
)

const (
	noRecipientLabel = "unknown recipient"
	pdfContentType   = "application/pdf"
	storageKeyPrefix = "salary-slips/"
)

// Job is one disbursement request: every slip is attempted once.
type Job struct {
	UserID    string
	SlipIDs   []string
	RequestID string
}

type Summary struct {
	Sent    int
	Failed  int
	Skipped int
}

func (s Summary) Message() string {
	return fmt.Sprintf("All salary slips have been processed! Sent: %d, failed: %d, skipped: %d.", s.Sent, s.Failed, s.Skipped)
}

func FailureMessage(month, email string, err error) string {
	return fmt.Sprintf("Failed to send salary slip for %s to %s. Error: %v", month, email, err)
}

type Notifier interface {
	Create(ctx context.Context, userID, message string) (notification.NotificationResponse, error)
}

//go:generate mockgen -source=disbursement_service.go -destination=mock/disbursement_service_mock.go -package=mock
type Service interface {
	Disburse(ctx context.Context, job Job) (Summary, error)
}

type Config struct {
	From string
}

type service struct {
	slips    salaryslip.Repository
	notifier Notifier
	mail     mailer.Mailer
	renderer Renderer
	files    storage.FileStorage
	cfg      Config
	now      func() time.Time
	logger   *zap.Logger
}

// NewService wires the job. files may be nil, in which case PDFs are only
// attached to the email.
func NewService(
	slips salaryslip.Repository,
	notifier Notifier,
	mail mailer.Mailer,
	renderer Renderer,
	files storage.FileStorage,
	cfg Config,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("disbursement.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("disbursement.service")
	}
	return &service{
		slips:    slips,
		notifier: notifier,
		mail:     mail,
		renderer: renderer,
		files:    files,
		cfg:      cfg,
		now:      time.Now,
		logger:   l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Disburse(ctx context.Context, job Job) (Summary, error) {
	log := s.log(ctx).With(
		zap.String("user_id", job.UserID),
		zap.Int("slip_count", len(job.SlipIDs)),
	)
	log.Info("salary slip disbursement started")

	var summary Summary
	for _, id := range job.SlipIDs {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		switch s.disburseOne(ctx, job.UserID, id) {
		case outcomeSent:
			summary.Sent++
		case outcomeSkipped:
			summary.Skipped++
		default:
			summary.Failed++
		}
	}

	if _, err := s.notifier.Create(ctx, job.UserID, summary.Message()); err != nil {
		log.Error("create summary notification failed", zap.Error(err))
		return summary, err
	}

	log.Info("salary slip disbursement finished",
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed),
		zap.Int("skipped", summary.Skipped),
	)
	return summary, nil
}

type outcome int

const (
	outcomeSent outcome = iota
	outcomeSkipped
	outcomeFailed
)

func (s *service) disburseOne(ctx context.Context, userID, id string) outcome {
	log := s.log(ctx).With(zap.String("salary_slip_id", id))

	slip, err := s.slips.FindByIDWithEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = ErrSlipNotFound
		}
		log.Warn("load salary slip failed", zap.Error(err))
		s.notify(ctx, userID, fmt.Sprintf("Failed to send salary slip %s. Error: %v", id, err))
		return outcomeFailed
	}

	if slip.EmailStatus == salaryslip.EmailStatusSent {
		log.Info("salary slip already sent, skipping")
		return outcomeSkipped
	}

	view := NewSlipView(*slip)
	if err := s.deliver(ctx, slip, view); err != nil {
		slip.MarkFailed(err.Error())
		if updErr := s.slips.UpdateDelivery(ctx, slip); updErr != nil {
			log.Error("record delivery failure failed", zap.Error(updErr))
		}

		recipient := view.Email
		if recipient == "" {
			recipient = noRecipientLabel
		}
		log.Warn("salary slip delivery failed", zap.Error(err))
		s.notify(ctx, userID, FailureMessage(view.Month, recipient, err))
		return outcomeFailed
	}

	slip.MarkSent(s.now())
	if err := s.slips.UpdateDelivery(ctx, slip); err != nil {
		// the mail is already out; a redelivery of this job will send it again
		log.Error("record delivery success failed", zap.Error(err))
	}

	log.Info("salary slip sent", zap.String("to", view.Email), zap.String("month", view.Month))
	return outcomeSent
}

func (s *service) deliver(ctx context.Context, slip *salaryslip.SalarySlip, view SlipView) error {
	if slip.Employee == nil {
		return ErrEmployeeMissing
	}
	if view.Email == "" {
		return ErrEmployeeNoEmail
	}

	doc, err := s.renderer.Render(view)
	if err != nil {
		return err
	}

	if s.files != nil {
		key, err := s.files.Upload(ctx, bytes.NewReader(doc), storageKeyPrefix+slip.ID.String()+".pdf", pdfContentType)
		if err != nil {
			return fmt.Errorf("store salary slip pdf: %w", err)
		}
		slip.PdfPath = &key
	}

	return s.mail.Send(ctx, mailer.Message{
		From:    s.cfg.From,
		To:      view.Email,
		Subject: "Salary Slip for " + view.Month,
		Body:    fmt.Sprintf("Dear %s,\n\nPlease find attached your salary slip for %s.", view.FirstName, view.Month),
		Attachments: []mailer.Attachment{{
			Filename:    salaryslip.AttachmentName(slip.Month),
			ContentType: pdfContentType,
			Data:        doc,
		}},
	})
}

func (s *service) notify(ctx context.Context, userID, message string) {
	if _, err := s.notifier.Create(ctx, userID, message); err != nil {
		s.log(ctx).Error("create failure notification failed", zap.Error(err))
	}
}
