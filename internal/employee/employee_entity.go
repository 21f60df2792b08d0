package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Employee is keyed for imports by EmployeeCode, the identifier used in
// payroll spreadsheets. Blank codes and emails are stored as NULL so the
// unique indexes only apply to real values.
type Employee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode *string   `gorm:"type:varchar(100);uniqueIndex:uq_employee_code"`
	FirstName    string    `gorm:"type:varchar(100)"`
	LastName     string    `gorm:"type:varchar(100)"`
	Email        *string   `gorm:"type:varchar(254);uniqueIndex:uq_employee_email"`
	Department   string    `gorm:"type:varchar(100)"`
	Designation  string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ImportedEmployee carries the identity columns read from one spreadsheet row.
type ImportedEmployee struct {
	EmployeeCode string
	FirstName    string
	LastName     string
	Email        string
}

func nullableString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}

func stringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
