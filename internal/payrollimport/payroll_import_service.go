package payrollimport

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/ibrahim77gh/salary-portal-backend/internal/columnmapping"
	"github.com/ibrahim77gh/salary-portal-backend/internal/employee"
	"github.com/ibrahim77gh/salary-portal-backend/internal/events"
	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"
	"github.com/ibrahim77gh/salary-portal-backend/internal/spreadsheet"
	"github.com/ibrahim77gh/salary-portal-backend/internal/uploadlog"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MappingResolver interface {
	Resolve(ctx context.Context, userID string) (columnmapping.Mapping, error)
}

type EmployeeResolver interface {
	GetOrCreateByCode(ctx context.Context, in employee.ImportedEmployee) (*employee.Employee, bool, error)
}

//go:generate mockgen -source=payroll_import_service.go -destination=mock/payroll_import_service_mock.go -package=mock
type Service interface {
	// Import turns an uploaded workbook into salary slips and queues them for
	// disbursement. Row failures are recorded on the upload log only.
	Import(ctx context.Context, userID, fileName string, r io.Reader) (ImportResponse, error)
}

type service struct {
	mappings  MappingResolver
	logs      uploadlog.Service
	employees EmployeeResolver
	slips     salaryslip.Repository
	outbox    kafka.OutboxRepository
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	mappings MappingResolver,
	logs uploadlog.Service,
	employees EmployeeResolver,
	slips salaryslip.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payrollimport.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payrollimport.service")
	}
	return &service{
		mappings:  mappings,
		logs:      logs,
		employees: employees,
		slips:     slips,
		outbox:    outbox,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Import(ctx context.Context, userID, fileName string, r io.Reader) (ImportResponse, error) {
	mapping, err := s.mappings.Resolve(ctx, userID)
	if err != nil {
		return ImportResponse{}, err
	}

	upload, err := s.logs.Start(ctx, userID, fileName)
	if err != nil {
		return ImportResponse{}, err
	}

	slipIDs, err := s.build(ctx, upload, mapping, fileName, r)
	if err != nil {
		return ImportResponse{}, s.fail(ctx, upload, err)
	}

	if err := s.enqueue(ctx, userID, slipIDs); err != nil {
		return ImportResponse{}, s.fail(ctx, upload, err)
	}

	s.log(ctx).Info("payroll spreadsheet imported",
		zap.String("upload_log_id", upload.ID.String()),
		zap.Int("total_records", upload.TotalRecords),
		zap.Int("processed_records", upload.ProcessedRecords),
	)
	return ImportResponse{
		Message:   SuccessMessage,
		UploadLog: uploadlog.ToResponse(*upload),
	}, nil
}

func (s *service) fail(ctx context.Context, upload *uploadlog.UploadLog, cause error) error {
	if err := s.logs.Fail(ctx, upload, cause); err != nil {
		s.log(ctx).Error("record upload failure failed", zap.Error(err))
	}
	return cause
}

func (s *service) build(ctx context.Context, upload *uploadlog.UploadLog, mapping columnmapping.Mapping, fileName string, r io.Reader) ([]string, error) {
	table, err := spreadsheet.Parse(fileName, r)
	if err != nil {
		return nil, err
	}

	cols, err := Extract(table, mapping)
	if err != nil {
		return nil, err
	}

	total := cols.Rows()
	if err := s.logs.SetTotal(ctx, upload, total); err != nil {
		return nil, err
	}

	slipIDs := make([]string, 0, total)
	for i := 0; i < total; i++ {
		slipID, rowErr := s.buildRow(ctx, cols, i)
		if rowErr != nil {
			if err := s.logs.RecordRowError(ctx, upload, i, rowErr); err != nil {
				return nil, err
			}
			continue
		}

		slipIDs = append(slipIDs, slipID)
		if err := s.logs.RecordRowSuccess(ctx, upload); err != nil {
			return nil, err
		}
	}

	if err := s.logs.Complete(ctx, upload); err != nil {
		return nil, err
	}
	return slipIDs, nil
}

func (s *service) buildRow(ctx context.Context, cols Extracted, i int) (string, error) {
	empl, _, err := s.employees.GetOrCreateByCode(ctx, employee.ImportedEmployee{
		EmployeeCode: cols.EmployeeID.At(i),
		FirstName:    cols.FirstName.At(i),
		LastName:     cols.LastName.At(i),
		Email:        cols.Email.At(i),
	})
	if err != nil {
		return "", err
	}

	components, err := cols.Components(i)
	if err != nil {
		return "", err
	}

	employeeID := empl.ID
	slip := &salaryslip.SalarySlip{
		ID:          uuid.New(),
		EmployeeID:  &employeeID,
		Month:       s.now(),
		EmailStatus: salaryslip.EmailStatusPending,
	}
	slip.ApplyComponents(components)

	if err := s.slips.Create(ctx, slip); err != nil {
		return "", fmt.Errorf("save salary slip: %w", err)
	}
	return slip.ID.String(), nil
}

func (s *service) enqueue(ctx context.Context, userID string, slipIDs []string) error {
	event := events.NewSalarySlipDisbursementRequested(userID, slipIDs, contextutil.GetRequestID(ctx))
	outboxEvent, err := event.OutboxEvent()
	if err != nil {
		return err
	}
	if err := s.outbox.Create(ctx, outboxEvent); err != nil {
		s.log(ctx).Error("enqueue disbursement failed", zap.Error(err))
		return fmt.Errorf("enqueue salary slip disbursement: %w", err)
	}

	s.log(ctx).Info("salary slip disbursement queued",
		zap.String("job_id", outboxEvent.ID),
		zap.Int("slip_count", len(slipIDs)),
	)
	return nil
}
