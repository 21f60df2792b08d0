package columnmapping

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Mapping names the spreadsheet header used for each canonical payroll field.
type Mapping struct {
	EmployeeID          string `json:"employee_id" gorm:"type:varchar(255);not null"`
	FirstName           string `json:"first_name" gorm:"type:varchar(255);not null"`
	LastName            string `json:"last_name" gorm:"type:varchar(255);not null"`
	Email               string `json:"email" gorm:"type:varchar(255);not null"`
	BasicSalary         string `json:"basic_salary" gorm:"type:varchar(255);not null"`
	ConveyanceAllowance string `json:"conveyance_allowance" gorm:"type:varchar(255);not null"`
	MedicalAllowance    string `json:"medical_allowance" gorm:"type:varchar(255);not null"`
	OtherAllowances     string `json:"other_allowances" gorm:"type:varchar(255);not null"`
	ProvidentFund       string `json:"provident_fund" gorm:"type:varchar(255);not null"`
	ProfessionalTax     string `json:"professional_tax" gorm:"type:varchar(255);not null"`
	IncomeTax           string `json:"income_tax" gorm:"type:varchar(255);not null"`
	OtherDeductions     string `json:"other_deductions" gorm:"type:varchar(255);not null"`
}

type ColumnMapping struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index:idx_column_mapping_user"`
	Name     string    `gorm:"type:varchar(100);not null"`
	IsActive bool      `gorm:"not null;default:false"`

	Mapping `gorm:"embedded;embeddedPrefix:col_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func DefaultMapping() Mapping {
	return Mapping{
		EmployeeID:          "Employee ID",
		FirstName:           "First Name",
		LastName:            "Last Name",
		Email:               "Email",
		BasicSalary:         "Basic Salary",
		ConveyanceAllowance: "Conveyance Allowance",
		MedicalAllowance:    "Medical Allowance",
		OtherAllowances:     "Other Allowances",
		ProvidentFund:       "Provident Fund",
		ProfessionalTax:     "Professional Tax",
		IncomeTax:           "Income Tax",
		OtherDeductions:     "Other Deductions",
	}
}

// WithDefaults trims every header and fills blank ones from DefaultMapping.
func (m Mapping) WithDefaults() Mapping {
	d := DefaultMapping()
	pick := func(v, fallback string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return fallback
		}
		return v
	}
	return Mapping{
		EmployeeID:          pick(m.EmployeeID, d.EmployeeID),
		FirstName:           pick(m.FirstName, d.FirstName),
		LastName:            pick(m.LastName, d.LastName),
		Email:               pick(m.Email, d.Email),
		BasicSalary:         pick(m.BasicSalary, d.BasicSalary),
		ConveyanceAllowance: pick(m.ConveyanceAllowance, d.ConveyanceAllowance),
		MedicalAllowance:    pick(m.MedicalAllowance, d.MedicalAllowance),
		OtherAllowances:     pick(m.OtherAllowances, d.OtherAllowances),
		ProvidentFund:       pick(m.ProvidentFund, d.ProvidentFund),
		ProfessionalTax:     pick(m.ProfessionalTax, d.ProfessionalTax),
		IncomeTax:           pick(m.IncomeTax, d.IncomeTax),
		OtherDeductions:     pick(m.OtherDeductions, d.OtherDeductions),
	}
}
