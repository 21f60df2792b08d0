package salaryslip

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/events"
	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka"
	salaryslipserrors "github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=salary_slip_service.go -destination=mock/salary_slip_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateSalarySlipRequest) (SalarySlipResponse, error)
	GetAll(ctx context.Context, filter GetSalarySlipsFilterRequest) ([]SalarySlipResponse, error)
	GetByID(ctx context.Context, id string) (SalarySlipResponse, error)
	Update(ctx context.Context, id string, req UpdateSalarySlipRequest) (SalarySlipResponse, error)
	Delete(ctx context.Context, id string) error
	RequestDisbursement(ctx context.Context, userID string, req DisburseRequest) (DisburseResponse, error)
	OpenPDF(ctx context.Context, id string) (io.ReadCloser, string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	files  storage.FileStorage
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, nil, logger...)
}

// NewServiceWithOutbox enables manual disbursement through outbox and PDF
// downloads through files. Either may be nil.
func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	files storage.FileStorage,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("salaryslip.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("salaryslip.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		files:  files,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, req CreateSalarySlipRequest) (SalarySlipResponse, error) {
	log := s.log(ctx)

	month := s.now()
	if strings.TrimSpace(req.Month) != "" {
		parsed, err := parseMonth(req.Month)
		if err != nil {
			return SalarySlipResponse{}, err
		}
		month = parsed
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalarySlipResponse{}, salaryslipserrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create salary slip begin tx failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	if !exists {
		return SalarySlipResponse{}, salaryslipserrors.ErrEmployeeNotFound
	}

	slip := &SalarySlip{
		ID:          uuid.New(),
		EmployeeID:  &employeeID,
		Month:       month,
		EmailStatus: EmailStatusPending,
	}
	slip.ApplyComponents(req.toComponents())

	if err := qtx.Create(ctx, slip); err != nil {
		log.Error("create salary slip persist failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create salary slip commit failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}

	log.Info("create salary slip success",
		zap.String("salary_slip_id", slip.ID.String()),
		zap.String("net_salary", slip.NetSalary.StringFixed(2)),
	)
	return mapToResponse(*slip), nil
}

func (s *service) GetAll(ctx context.Context, filter GetSalarySlipsFilterRequest) ([]SalarySlipResponse, error) {
	slips, err := s.repo.FindAll(ctx, SlipFilter{
		EmployeeID: filter.EmployeeID,
		Status:     filter.Status,
	})
	if err != nil {
		s.log(ctx).Error("get all salary slips failed", zap.Error(err))
		return nil, err
	}

	resp := make([]SalarySlipResponse, len(slips))
	for i, slip := range slips {
		resp[i] = mapToResponse(slip)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (SalarySlipResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SalarySlipResponse{}, salaryslipserrors.ErrInvalidSalarySlipID
	}

	slip, err := s.repo.FindByIDWithEmployee(ctx, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*slip), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateSalarySlipRequest) (SalarySlipResponse, error) {
	log := s.log(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return SalarySlipResponse{}, salaryslipserrors.ErrInvalidSalarySlipID
	}
	month, err := parseMonth(req.Month)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return SalarySlipResponse{}, salaryslipserrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update salary slip begin tx failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	slip, err := qtx.FindByID(ctx, id)
	if err != nil {
		return SalarySlipResponse{}, mapRepositoryError(err)
	}

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		return SalarySlipResponse{}, err
	}
	if !exists {
		return SalarySlipResponse{}, salaryslipserrors.ErrEmployeeNotFound
	}

	slip.EmployeeID = &employeeID
	slip.Month = month
	slip.ApplyComponents(req.toComponents())

	if err := qtx.Update(ctx, slip); err != nil {
		log.Error("update salary slip persist failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update salary slip commit failed", zap.Error(err))
		return SalarySlipResponse{}, err
	}

	log.Info("update salary slip success", zap.String("salary_slip_id", id))
	return mapToResponse(*slip), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return salaryslipserrors.ErrInvalidSalarySlipID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.log(ctx).Info("delete salary slip success", zap.String("salary_slip_id", id))
	return nil
}

// RequestDisbursement queues a job that re-renders and re-sends the given
// slips. Slips already SENT are skipped by the job.
func (s *service) RequestDisbursement(ctx context.Context, userID string, req DisburseRequest) (DisburseResponse, error) {
	log := s.log(ctx)
	if s.outbox == nil {
		return DisburseResponse{}, salaryslipserrors.ErrQueueUnavailable
	}

	ids := dedupeIDs(req.SlipIDs)
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			return DisburseResponse{}, salaryslipserrors.ErrInvalidSalarySlipID
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("request disbursement begin tx failed", zap.Error(err))
		return DisburseResponse{}, err
	}
	defer tx.Rollback()

	count, err := s.repo.WithTx(tx).CountByIDs(ctx, ids)
	if err != nil {
		return DisburseResponse{}, err
	}
	if count != int64(len(ids)) {
		return DisburseResponse{}, salaryslipserrors.ErrSlipsNotFound
	}

	event := events.NewSalarySlipDisbursementRequested(userID, ids, contextutil.GetRequestID(ctx))
	outboxEvent, err := event.OutboxEvent()
	if err != nil {
		return DisburseResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		log.Error("request disbursement enqueue failed", zap.Error(err))
		return DisburseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("request disbursement commit failed", zap.Error(err))
		return DisburseResponse{}, err
	}

	log.Info("salary slip disbursement queued",
		zap.String("job_id", outboxEvent.ID),
		zap.Int("slip_count", len(ids)),
	)
	return DisburseResponse{
		JobID:     outboxEvent.ID,
		SlipCount: len(ids),
		Message:   "Salary slip disbursement queued",
	}, nil
}

// OpenPDF returns the stored PDF of a slip and a download file name.
func (s *service) OpenPDF(ctx context.Context, id string) (io.ReadCloser, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", salaryslipserrors.ErrInvalidSalarySlipID
	}

	slip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, "", mapRepositoryError(err)
	}
	if s.files == nil || slip.PdfPath == nil || *slip.PdfPath == "" {
		return nil, "", salaryslipserrors.ErrPDFNotGenerated
	}

	rc, err := s.files.Download(ctx, *slip.PdfPath)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, "", salaryslipserrors.ErrPDFNotGenerated
		}
		return nil, "", err
	}
	return rc, AttachmentName(slip.Month), nil
}

// MonthLabel formats a slip month the way it appears on the slip and in mail.
func MonthLabel(month time.Time) string {
	return month.Format("January 2006")
}

func AttachmentName(month time.Time) string {
	return "Salary_Slip_" + strings.ReplaceAll(MonthLabel(month), " ", "_") + ".pdf"
}

func parseMonth(v string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, salaryslipserrors.ErrInvalidMonth
	}
	return t, nil
}

func dedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func mapToResponse(slip SalarySlip) SalarySlipResponse {
	resp := SalarySlipResponse{
		ID:                  slip.ID.String(),
		Month:               slip.Month.Format(MonthLayout),
		BasicSalary:         slip.BasicSalary.StringFixed(2),
		ConveyanceAllowance: slip.ConveyanceAllowance.StringFixed(2),
		MedicalAllowance:    slip.MedicalAllowance.StringFixed(2),
		OtherAllowances:     slip.OtherAllowances.StringFixed(2),
		ProvidentFund:       slip.ProvidentFund.StringFixed(2),
		ProfessionalTax:     slip.ProfessionalTax.StringFixed(2),
		IncomeTax:           slip.IncomeTax.StringFixed(2),
		OtherDeductions:     slip.OtherDeductions.StringFixed(2),
		GrossEarnings:       slip.GrossEarnings.StringFixed(2),
		TotalDeductions:     slip.TotalDeductions.StringFixed(2),
		NetSalary:           slip.NetSalary.StringFixed(2),
		EmailStatus:         slip.EmailStatus,
		ErrorLog:            slip.ErrorLog,
		HasPDF:              slip.PdfPath != nil && *slip.PdfPath != "",
		SentAt:              slip.SentAt,
		CreatedAt:           slip.CreatedAt,
		UpdatedAt:           slip.UpdatedAt,
	}

	if slip.EmployeeID != nil {
		v := slip.EmployeeID.String()
		resp.EmployeeID = &v
	}
	if slip.Employee != nil {
		resp.Employee = &SlipEmployeeResponse{
			ID:           slip.Employee.ID.String(),
			EmployeeCode: derefString(slip.Employee.EmployeeCode),
			FullName:     slip.Employee.FullName(),
			Email:        derefString(slip.Employee.Email),
		}
	}

	return resp
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
