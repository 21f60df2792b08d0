package salaryslip

import (
	"time"

	"github.com/shopspring/decimal"
)

const MonthLayout = "2006-01-02"

// ComponentsRequest carries the monetary inputs only. Totals are always
// derived server side.
type ComponentsRequest struct {
	BasicSalary         decimal.Decimal `json:"basic_salary"`
	ConveyanceAllowance decimal.Decimal `json:"conveyance_allowance"`
	MedicalAllowance    decimal.Decimal `json:"medical_allowance"`
	OtherAllowances     decimal.Decimal `json:"other_allowances"`
	ProvidentFund       decimal.Decimal `json:"provident_fund"`
	ProfessionalTax     decimal.Decimal `json:"professional_tax"`
	IncomeTax           decimal.Decimal `json:"income_tax"`
	OtherDeductions     decimal.Decimal `json:"other_deductions"`
}

func (r ComponentsRequest) toComponents() Components {
	return Components(r)
}

type CreateSalarySlipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"omitempty,datetime=2006-01-02"`
	ComponentsRequest
}

type UpdateSalarySlipRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
	Month      string `json:"month" binding:"required,datetime=2006-01-02"`
	ComponentsRequest
}

type GetSalarySlipsFilterRequest struct {
	EmployeeID string `form:"employee_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=PENDING SENT FAILED"`
}

type DisburseRequest struct {
	SlipIDs []string `json:"slip_ids" binding:"required,min=1,dive,uuid"`
}

type DisburseResponse struct {
	JobID     string `json:"job_id"`
	SlipCount int    `json:"slip_count"`
	Message   string `json:"message"`
}

type SlipEmployeeResponse struct {
	ID           string `json:"id"`
	EmployeeCode string `json:"employee_code,omitempty"`
	FullName     string `json:"full_name"`
	Email        string `json:"email,omitempty"`
}

type SalarySlipResponse struct {
	ID                  string                `json:"id"`
	EmployeeID          *string               `json:"employee_id"`
	Employee            *SlipEmployeeResponse `json:"employee,omitempty"`
	Month               string                `json:"month"`
	BasicSalary         string                `json:"basic_salary"`
	ConveyanceAllowance string                `json:"conveyance_allowance"`
	MedicalAllowance    string                `json:"medical_allowance"`
	OtherAllowances     string                `json:"other_allowances"`
	ProvidentFund       string                `json:"provident_fund"`
	ProfessionalTax     string                `json:"professional_tax"`
	IncomeTax           string                `json:"income_tax"`
	OtherDeductions     string                `json:"other_deductions"`
	GrossEarnings       string                `json:"gross_earnings"`
	TotalDeductions     string                `json:"total_deductions"`
	NetSalary           string                `json:"net_salary"`
	EmailStatus         string                `json:"email_status"`
	ErrorLog            *string               `json:"error_log"`
	HasPDF              bool                  `json:"has_pdf"`
	SentAt              *time.Time            `json:"sent_at"`
	CreatedAt           time.Time             `json:"created_at"`
	UpdatedAt           time.Time             `json:"updated_at"`
}
