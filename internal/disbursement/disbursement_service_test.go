package disbursement_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/disbursement"
	"github.com/ibrahim77gh/salary-portal-backend/internal/notification"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	salaryslipMock "github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip/mock"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/config"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/mailer"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type fakeNotifier struct {
	messages []string
	err      error
}

func (f *fakeNotifier) Create(_ context.Context, _ string, message string) (notification.NotificationResponse, error) {
	f.messages = append(f.messages, message)
	return notification.NotificationResponse{Message: message}, f.err
}

type fakeMailer struct {
	sent []mailer.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mailer.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeRenderer struct {
	err error
}

func (f fakeRenderer) Render(disbursement.SlipView) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-fake"), nil
}

type fakeStorage struct {
	keys []string
}

func (f *fakeStorage) Upload(_ context.Context, r io.Reader, key, _ string) (string, error) {
	f.keys = append(f.keys, key)
	return key, nil
}
func (f *fakeStorage) Download(context.Context, string) (io.ReadCloser, error) { return nil, nil }
func (f *fakeStorage) Delete(context.Context, string) error                   { return nil }

type jobDeps struct {
	repo     *salaryslipMock.MockRepository
	notifier *fakeNotifier
	mail     *fakeMailer
}

func newSlip(email *string, status string) *salaryslip.SalarySlip {
	code := "E-" + uuid.NewString()[:4]
	slip := &salaryslip.SalarySlip{
		ID:          uuid.New(),
		Month:       time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC),
		EmailStatus: status,
		Employee: &salaryslip.SlipEmployee{
			ID:           uuid.New(),
			EmployeeCode: &code,
			FirstName:    "Alice",
			LastName:     "Smith",
			Email:        email,
		},
	}
	slip.ApplyComponents(salaryslip.Components{BasicSalary: decimal.NewFromInt(1000)})
	return slip
}

func strPtr(v string) *string { return &v }

func setupJob(t *testing.T, renderer disbursement.Renderer, fs *fakeStorage) (*jobDeps, disbursement.Service) {
	ctrl := gomock.NewController(t)
	deps := &jobDeps{
		repo:     salaryslipMock.NewMockRepository(ctrl),
		notifier: &fakeNotifier{},
		mail:     &fakeMailer{},
	}
	var files storage.FileStorage
	if fs != nil {
		files = fs
	}
	svc := disbursement.NewService(deps.repo, deps.notifier, deps.mail, renderer, files, disbursement.Config{From: "hr@example.com"})
	return deps, svc
}

func TestDisburse_SentAndMissingEmail(t *testing.T) {
	ctx := context.Background()
	deps, svc := setupJob(t, fakeRenderer{}, nil)

	a := newSlip(strPtr("alice@example.com"), salaryslip.EmailStatusPending)
	b := newSlip(nil, salaryslip.EmailStatusPending)

	deps.repo.EXPECT().FindByIDWithEmployee(ctx, a.ID.String()).Return(a, nil)
	deps.repo.EXPECT().UpdateDelivery(ctx, a).DoAndReturn(func(_ context.Context, s *salaryslip.SalarySlip) error {
		assert.Equal(t, salaryslip.EmailStatusSent, s.EmailStatus)
		assert.NotNil(t, s.SentAt)
		assert.Nil(t, s.ErrorLog)
		return nil
	})
	deps.repo.EXPECT().FindByIDWithEmployee(ctx, b.ID.String()).Return(b, nil)
	deps.repo.EXPECT().UpdateDelivery(ctx, b).DoAndReturn(func(_ context.Context, s *salaryslip.SalarySlip) error {
		assert.Equal(t, salaryslip.EmailStatusFailed, s.EmailStatus)
		assert.Equal(t, disbursement.ErrEmployeeNoEmail.Error(), *s.ErrorLog)
		return nil
	})

	summary, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{a.ID.String(), b.ID.String()}})

	assert.NoError(t, err)
	assert.Equal(t, disbursement.Summary{Sent: 1, Failed: 1}, summary)

	assert.Len(t, deps.mail.sent, 1)
	msg := deps.mail.sent[0]
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "hr@example.com", msg.From)
	assert.Equal(t, "Salary Slip for May 2026", msg.Subject)
	assert.Equal(t, "Dear Alice,\n\nPlease find attached your salary slip for May 2026.", msg.Body)
	assert.Equal(t, "Salary_Slip_May_2026.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)

	assert.Equal(t, []string{
		"Failed to send salary slip for May 2026 to unknown recipient. Error: employee has no email address",
		"All salary slips have been processed! Sent: 1, failed: 1, skipped: 0.",
	}, deps.notifier.messages)
}

func TestDisburse_SkipsAlreadySent(t *testing.T) {
	ctx := context.Background()
	deps, svc := setupJob(t, fakeRenderer{}, nil)
	slip := newSlip(strPtr("alice@example.com"), salaryslip.EmailStatusSent)
	deps.repo.EXPECT().FindByIDWithEmployee(ctx, slip.ID.String()).Return(slip, nil)

	summary, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{slip.ID.String()}})

	assert.NoError(t, err)
	assert.Equal(t, disbursement.Summary{Skipped: 1}, summary)
	assert.Empty(t, deps.mail.sent)
	assert.Len(t, deps.notifier.messages, 1)
}

func TestDisburse_MissingSlip(t *testing.T) {
	ctx := context.Background()
	deps, svc := setupJob(t, fakeRenderer{}, nil)
	id := uuid.NewString()
	deps.repo.EXPECT().FindByIDWithEmployee(ctx, id).Return(nil, gorm.ErrRecordNotFound)

	summary, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{id}})

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.Failed)
	assert.Contains(t, deps.notifier.messages[0], "salary slip not found")
}

func TestDisburse_RenderAndSendFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("render error", func(t *testing.T) {
		deps, svc := setupJob(t, fakeRenderer{err: errors.New("template broken")}, nil)
		slip := newSlip(strPtr("alice@example.com"), salaryslip.EmailStatusPending)
		deps.repo.EXPECT().FindByIDWithEmployee(ctx, slip.ID.String()).Return(slip, nil)
		deps.repo.EXPECT().UpdateDelivery(ctx, slip).Return(nil)

		summary, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{slip.ID.String()}})

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, "template broken", *slip.ErrorLog)
		assert.Equal(t, "Failed to send salary slip for May 2026 to alice@example.com. Error: template broken", deps.notifier.messages[0])
	})

	t.Run("smtp error", func(t *testing.T) {
		deps, svc := setupJob(t, fakeRenderer{}, nil)
		deps.mail.err = errors.New("connection refused")
		slip := newSlip(strPtr("alice@example.com"), salaryslip.EmailStatusPending)
		deps.repo.EXPECT().FindByIDWithEmployee(ctx, slip.ID.String()).Return(slip, nil)
		deps.repo.EXPECT().UpdateDelivery(ctx, slip).Return(nil)

		summary, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{slip.ID.String()}})

		assert.NoError(t, err)
		assert.Equal(t, 1, summary.Failed)
		assert.Equal(t, salaryslip.EmailStatusFailed, slip.EmailStatus)
	})

	t.Run("employee deleted", func(t *testing.T) {
		deps, svc := setupJob(t, fakeRenderer{}, nil)
		slip := newSlip(nil, salaryslip.EmailStatusPending)
		slip.Employee = nil
		deps.repo.EXPECT().FindByIDWithEmployee(ctx, slip.ID.String()).Return(slip, nil)
		deps.repo.EXPECT().UpdateDelivery(ctx, slip).Return(nil)

		_, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{slip.ID.String()}})

		assert.NoError(t, err)
		assert.True(t, strings.HasSuffix(deps.notifier.messages[0], disbursement.ErrEmployeeMissing.Error()))
	})
}

func TestDisburse_DisabledMailerNeverMarksSent(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := salaryslipMock.NewMockRepository(ctrl)
	notifier := &fakeNotifier{}
	svc := disbursement.NewService(repo, notifier, mailer.New(config.SMTPConfig{}), fakeRenderer{}, nil, disbursement.Config{From: "hr@example.com"})

	slip := newSlip(strPtr("alice@example.com"), salaryslip.EmailStatusPending)
	repo.EXPECT().FindByIDWithEmployee(ctx, slip.ID.String()).Return(slip, nil)
	repo.EXPECT().UpdateDelivery(ctx, slip).DoAndReturn(func(_ context.Context, s *salaryslip.SalarySlip) error {
		assert.Equal(t, salaryslip.EmailStatusFailed, s.EmailStatus)
		assert.Nil(t, s.SentAt)
		return nil
	})

	summary, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{slip.ID.String()}})

	assert.NoError(t, err)
	assert.Equal(t, disbursement.Summary{Failed: 1}, summary)
	assert.Equal(t, mailer.ErrMailDisabled.Error(), *slip.ErrorLog)
	assert.Equal(t,
		"Failed to send salary slip for May 2026 to alice@example.com. Error: "+mailer.ErrMailDisabled.Error(),
		notifier.messages[0],
	)
}

func TestDisburse_StoresPDF(t *testing.T) {
	ctx := context.Background()
	files := &fakeStorage{}
	deps, svc := setupJob(t, fakeRenderer{}, files)
	slip := newSlip(strPtr("alice@example.com"), salaryslip.EmailStatusPending)
	deps.repo.EXPECT().FindByIDWithEmployee(ctx, slip.ID.String()).Return(slip, nil)
	deps.repo.EXPECT().UpdateDelivery(ctx, slip).Return(nil)

	_, err := svc.Disburse(ctx, disbursement.Job{UserID: "u1", SlipIDs: []string{slip.ID.String()}})

	assert.NoError(t, err)
	assert.Equal(t, []string{"salary-slips/" + slip.ID.String() + ".pdf"}, files.keys)
	assert.Equal(t, files.keys[0], *slip.PdfPath)
}

func TestDisburse_EmptyJobStillNotifies(t *testing.T) {
	deps, svc := setupJob(t, fakeRenderer{}, nil)

	summary, err := svc.Disburse(context.Background(), disbursement.Job{UserID: "u1"})

	assert.NoError(t, err)
	assert.Equal(t, disbursement.Summary{}, summary)
	assert.Equal(t, []string{"All salary slips have been processed! Sent: 0, failed: 0, skipped: 0."}, deps.notifier.messages)
}

func TestDisburse_SummaryNotificationError(t *testing.T) {
	deps, svc := setupJob(t, fakeRenderer{}, nil)
	deps.notifier.err = errors.New("db down")

	_, err := svc.Disburse(context.Background(), disbursement.Job{UserID: "u1"})

	assert.Error(t, err)
}
