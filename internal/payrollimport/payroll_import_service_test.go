package payrollimport_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"

	"github.com/ibrahim77gh/salary-portal-backend/internal/columnmapping"
	"github.com/ibrahim77gh/salary-portal-backend/internal/employee"
	"github.com/ibrahim77gh/salary-portal-backend/internal/events"
	"github.com/ibrahim77gh/salary-portal-backend/internal/messaging/kafka"
	"github.com/ibrahim77gh/salary-portal-backend/internal/payrollimport"
	payrollimporterrors "github.com/ibrahim77gh/salary-portal-backend/internal/payrollimport/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	spreadsheeterrors "github.com/ibrahim77gh/salary-portal-backend/internal/spreadsheet/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/uploadlog"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type staticResolver struct {
	mapping columnmapping.Mapping
}

func (r staticResolver) Resolve(context.Context, string) (columnmapping.Mapping, error) {
	return r.mapping, nil
}

type recordingOutbox struct {
	events []kafka.OutboxEvent
	err    error
}

func (o *recordingOutbox) WithTx(*sql.Tx) kafka.OutboxRepository { return o }
func (o *recordingOutbox) Create(_ context.Context, ev kafka.OutboxEvent) error {
	if o.err != nil {
		return o.err
	}
	o.events = append(o.events, ev)
	return nil
}
func (o *recordingOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) {
	return o.events, nil
}
func (o *recordingOutbox) MarkSent(context.Context, string) error           { return nil }
func (o *recordingOutbox) MarkFailed(context.Context, string, string) error { return nil }

func workbook(rows ...[]any) *bytes.Buffer {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SetSheetRow(sheet, cell, &row)).To(Succeed())
	}
	buf, err := f.WriteToBuffer()
	Expect(err).NotTo(HaveOccurred())
	return buf
}

var header = []any{
	"Employee ID", "First Name", "Last Name", "Email",
	"Basic Salary", "Conveyance Allowance", "Medical Allowance", "Other Allowances",
	"Provident Fund", "Professional Tax", "Income Tax", "Other Deductions",
}

var _ = Describe("Payroll import", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		outbox  *recordingOutbox
		svc     payrollimport.Service
		userID  string
		mapping columnmapping.Mapping
	)

	build := func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		svc = payrollimport.NewService(
			staticResolver{mapping: mapping},
			uploadlog.NewService(uploadlog.NewRepository(db)),
			employee.NewService(sqlDB, employee.NewRepository(db)),
			salaryslip.NewRepository(db),
			outbox,
		)
	}

	countSlips := func() int64 {
		var n int64
		Expect(db.Model(&salaryslip.SalarySlip{}).Count(&n).Error).To(Succeed())
		return n
	}

	loadLog := func() uploadlog.UploadLog {
		var l uploadlog.UploadLog
		Expect(db.Where("user_id = ?", userID).First(&l).Error).To(Succeed())
		return l
	}

	BeforeEach(func() {
		ctx = context.Background()
		userID = uuid.NewString()
		mapping = columnmapping.DefaultMapping()
		outbox = &recordingOutbox{}

		var err error
		db, err = gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)
		DeferCleanup(sqlDB.Close)
		Expect(db.AutoMigrate(&employee.Employee{}, &salaryslip.SalarySlip{}, &uploadlog.UploadLog{})).To(Succeed())

		build()
	})

	Context("with well formed rows", func() {
		It("creates one slip per row and completes the log", func() {
			file := workbook(header,
				[]any{"E001", "Alice", "Smith", "alice@example.com", 5000, 300, 200, 100, 600, 200, 450.5, 0},
				[]any{"E002", "Bob", "Jones", "bob@example.com", 4000, 0, 0, 0, 480, 200, 300, 20},
			)

			resp, err := svc.Import(ctx, userID, "march.xlsx", file)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Message).To(Equal(payrollimport.SuccessMessage))
			Expect(resp.UploadLog.Status).To(Equal(uploadlog.StatusCompleted))
			Expect(resp.UploadLog.TotalRecords).To(Equal(2))
			Expect(resp.UploadLog.ProcessedRecords).To(Equal(2))
			Expect(countSlips()).To(Equal(int64(2)))

			var slip salaryslip.SalarySlip
			Expect(db.Joins("JOIN employees ON employees.id = salary_slips.employee_id").
				Where("employees.employee_code = ?", "E001").
				First(&slip).Error).To(Succeed())
			Expect(slip.GrossEarnings.Equal(decimal.NewFromInt(5600))).To(BeTrue())
			Expect(slip.TotalDeductions.Equal(decimal.RequireFromString("1250.5"))).To(BeTrue())
			Expect(slip.NetSalary.Equal(decimal.RequireFromString("4349.5"))).To(BeTrue())
			Expect(slip.EmailStatus).To(Equal(salaryslip.EmailStatusPending))
		})

		It("queues every created slip for disbursement", func() {
			file := workbook(header, []any{"E001", "Alice", "Smith", "alice@example.com", 5000})

			_, err := svc.Import(ctx, userID, "march.xlsx", file)

			Expect(err).NotTo(HaveOccurred())
			Expect(outbox.events).To(HaveLen(1))
			ev := outbox.events[0]
			Expect(ev.Topic).To(Equal(events.SalarySlipDisbursementRequestedTopic))
			Expect(ev.AggregateID).To(Equal(userID))

			var payload events.SalarySlipDisbursementRequestedEvent
			Expect(json.Unmarshal(ev.Payload, &payload)).To(Succeed())
			Expect(payload.SlipIDs).To(HaveLen(1))
		})

		It("reuses employees that already exist", func() {
			row := []any{"E001", "Alice", "Smith", "alice@example.com", 5000}

			_, err := svc.Import(ctx, userID, "march.xlsx", workbook(header, row))
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.Import(ctx, userID, "april.xlsx", workbook(header, row))
			Expect(err).NotTo(HaveOccurred())

			var employees int64
			Expect(db.Model(&employee.Employee{}).Count(&employees).Error).To(Succeed())
			Expect(employees).To(Equal(int64(1)))
			Expect(countSlips()).To(Equal(int64(2)))
		})

		It("honours a custom column mapping", func() {
			mapping.EmployeeID = "Staff No"
			mapping.BasicSalary = "Base"
			build()

			file := workbook([]any{"Staff No", "Base"}, []any{"S-9", 1000})

			resp, err := svc.Import(ctx, userID, "custom.xlsx", file)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UploadLog.ProcessedRecords).To(Equal(1))
		})
	})

	Context("with bad rows", func() {
		It("skips a row with a non numeric amount and records its index", func() {
			file := workbook(header,
				[]any{"E001", "Alice", "Smith", "alice@example.com", 5000},
				[]any{"E002", "Bob", "Jones", "bob@example.com", "lots"},
				[]any{"E003", "Cara", "Lee", "cara@example.com", 3000},
			)

			resp, err := svc.Import(ctx, userID, "march.xlsx", file)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UploadLog.TotalRecords).To(Equal(3))
			Expect(resp.UploadLog.ProcessedRecords).To(Equal(2))
			Expect(resp.UploadLog.ErrorLog).To(HavePrefix("Error processing row 2: "))
			Expect(resp.UploadLog.ErrorLog).To(ContainSubstring("lots"))
			Expect(countSlips()).To(Equal(int64(2)))
		})

		It("treats a blank employee identifier as a row error", func() {
			file := workbook(header,
				[]any{"", "Ghost", "", "", 100},
				[]any{"E001", "Alice", "Smith", "alice@example.com", 5000},
			)

			resp, err := svc.Import(ctx, userID, "march.xlsx", file)

			Expect(err).NotTo(HaveOccurred())
			Expect(resp.UploadLog.ProcessedRecords).To(Equal(1))
			Expect(resp.UploadLog.ErrorLog).To(HavePrefix("Error processing row 1: "))
		})
	})

	Context("when the upload cannot be processed", func() {
		It("rejects a sheet without the employee identifier column", func() {
			file := workbook([]any{"Name", "Basic Salary"}, []any{"Alice", 5000})

			_, err := svc.Import(ctx, userID, "march.xlsx", file)

			Expect(err).To(MatchError(payrollimporterrors.ErrEmployeeIDColumnMissing))
			Expect(countSlips()).To(BeZero())
			l := loadLog()
			Expect(l.Status).To(Equal(uploadlog.StatusFailed))
			Expect(l.TotalRecords).To(BeZero())
			Expect(outbox.events).To(BeEmpty())
		})

		It("fails the log on an unreadable workbook", func() {
			_, err := svc.Import(ctx, userID, "march.xlsx", strings.NewReader("not a workbook"))

			Expect(errors.Is(err, spreadsheeterrors.ErrInvalidSpreadsheet)).To(BeTrue())
			Expect(loadLog().Status).To(Equal(uploadlog.StatusFailed))
		})

		It("fails the log when the job cannot be queued", func() {
			outbox.err = errors.New("outbox unavailable")
			build()

			_, err := svc.Import(ctx, userID, "march.xlsx", workbook(header, []any{"E001", "Alice", "Smith", "a@example.com", 1}))

			Expect(err).To(HaveOccurred())
			l := loadLog()
			Expect(l.Status).To(Equal(uploadlog.StatusFailed))
			Expect(l.ProcessedRecords).To(Equal(1))
			Expect(l.ErrorLog).To(ContainSubstring("outbox unavailable"))
		})
	})

	It("queues an empty job when every row fails", func() {
		file := workbook(header, []any{"E001", "Alice", "Smith", "alice@example.com", "n/a"})

		_, err := svc.Import(ctx, userID, "march.xlsx", file)

		Expect(err).NotTo(HaveOccurred())
		Expect(outbox.events).To(HaveLen(1))
		var payload events.SalarySlipDisbursementRequestedEvent
		Expect(json.Unmarshal(outbox.events[0].Payload, &payload)).To(Succeed())
		Expect(payload.SlipIDs).To(BeEmpty())
	})
})
