package salaryslip

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SlipFilter struct {
	EmployeeID string
	Status     string
}

//go:generate mockgen -source=salary_slip_repo.go -destination=mock/salary_slip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, slip *SalarySlip) error
	FindAll(ctx context.Context, filter SlipFilter) ([]SalarySlip, error)
	FindByID(ctx context.Context, id string) (*SalarySlip, error)
	FindByIDWithEmployee(ctx context.Context, id string) (*SalarySlip, error)
	CountByIDs(ctx context.Context, ids []string) (int64, error)
	Update(ctx context.Context, slip *SalarySlip) error
	UpdateDelivery(ctx context.Context, slip *SalarySlip) error
	Delete(ctx context.Context, id string) error
	EmployeeExists(ctx context.Context, employeeID string) (bool, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Omit(clause.Associations).Create(slip).Error
}

func (r *repository) FindAll(ctx context.Context, filter SlipFilter) ([]SalarySlip, error) {
	db := r.conn(ctx).Preload("Employee")
	if filter.EmployeeID != "" {
		db = db.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		db = db.Where("email_status = ?", filter.Status)
	}

	var slips []SalarySlip
	err := db.Order("month DESC, created_at DESC").Find(&slips).Error
	return slips, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) FindByIDWithEmployee(ctx context.Context, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).Preload("Employee").First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) CountByIDs(ctx context.Context, ids []string) (int64, error) {
	var count int64
	err := r.conn(ctx).
		Model(&SalarySlip{}).
		Where("id IN ?", ids).
		Count(&count).Error
	return count, err
}

func (r *repository) Update(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Omit(clause.Associations).Save(slip).Error
}

// UpdateDelivery writes only the delivery columns so a concurrent edit of the
// amounts is not overwritten by the disbursement job.
func (r *repository) UpdateDelivery(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).
		Model(&SalarySlip{}).
		Where("id = ?", slip.ID).
		Updates(map[string]any{
			"email_status": slip.EmailStatus,
			"error_log":    slip.ErrorLog,
			"pdf_path":     slip.PdfPath,
			"sent_at":      slip.SentAt,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&SalarySlip{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) EmployeeExists(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.conn(ctx).
		Table("employees").
		Where("id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}
