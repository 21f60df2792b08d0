package salaryslip

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	EmailStatusPending = "PENDING"
	EmailStatusSent    = "SENT"
	EmailStatusFailed  = "FAILED"
)

// Components are the eight monetary inputs of a slip. Earnings come first,
// deductions last.
type Components struct {
	BasicSalary         decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ConveyanceAllowance decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	MedicalAllowance    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherAllowances     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ProvidentFund       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	ProfessionalTax     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	IncomeTax           decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	OtherDeductions     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
}

type Totals struct {
	GrossEarnings   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	TotalDeductions decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	NetSalary       decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
}

type SalarySlip struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey"`
	EmployeeID *uuid.UUID    `gorm:"type:uuid;index"`
	Employee   *SlipEmployee `gorm:"foreignKey:EmployeeID;references:ID;constraint:OnDelete:SET NULL"`
	Month      time.Time     `gorm:"type:date;not null"`

	Components `gorm:"embedded"`
	Totals     `gorm:"embedded"`

	EmailStatus string     `gorm:"type:varchar(10);not null;default:'PENDING';index"`
	ErrorLog    *string    `gorm:"type:text"`
	PdfPath     *string    `gorm:"type:varchar(255)"`
	SentAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SlipEmployee is the read side of the employees table used when rendering
// and mailing a slip.
type SlipEmployee struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	EmployeeCode *string
	FirstName    string
	LastName     string
	Email        *string
	Department   string
	Designation  string
}

func (SlipEmployee) TableName() string {
	return "employees"
}

func (e SlipEmployee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// ComputeTotals derives gross earnings, total deductions and net salary.
// Every input is rounded to two places first.
func ComputeTotals(c Components) Totals {
	c = c.Rounded()
	gross := c.BasicSalary.
		Add(c.ConveyanceAllowance).
		Add(c.MedicalAllowance).
		Add(c.OtherAllowances)
	deductions := c.ProvidentFund.
		Add(c.ProfessionalTax).
		Add(c.IncomeTax).
		Add(c.OtherDeductions)

	return Totals{
		GrossEarnings:   gross,
		TotalDeductions: deductions,
		NetSalary:       gross.Sub(deductions),
	}
}

func (c Components) Rounded() Components {
	return Components{
		BasicSalary:         c.BasicSalary.Round(2),
		ConveyanceAllowance: c.ConveyanceAllowance.Round(2),
		MedicalAllowance:    c.MedicalAllowance.Round(2),
		OtherAllowances:     c.OtherAllowances.Round(2),
		ProvidentFund:       c.ProvidentFund.Round(2),
		ProfessionalTax:     c.ProfessionalTax.Round(2),
		IncomeTax:           c.IncomeTax.Round(2),
		OtherDeductions:     c.OtherDeductions.Round(2),
	}
}

// ApplyComponents stores c and recomputes the derived totals. All write paths
// go through here.
func (s *SalarySlip) ApplyComponents(c Components) {
	s.Components = c.Rounded()
	s.Totals = ComputeTotals(s.Components)
}

func (s *SalarySlip) MarkSent(at time.Time) {
	s.EmailStatus = EmailStatusSent
	s.SentAt = &at
	s.ErrorLog = nil
}

func (s *SalarySlip) MarkFailed(reason string) {
	s.EmailStatus = EmailStatusFailed
	s.ErrorLog = &reason
}
