package disbursement

import (
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
)

// SlipView is the flattened data a slip document is rendered from. Money is
// pre-formatted to two decimals.
type SlipView struct {
	EmployeeID  string
	FirstName   string
	LastName    string
	Email       string
	Department  string
	Designation string
	Month       string

	BasicSalary         string
	ConveyanceAllowance string
	MedicalAllowance    string
	OtherAllowances     string
	GrossEarnings       string
	ProvidentFund       string
	ProfessionalTax     string
	IncomeTax           string
	OtherDeductions     string
	TotalDeductions     string
	NetSalary           string
}

func NewSlipView(slip salaryslip.SalarySlip) SlipView {
	v := SlipView{
		Month:               salaryslip.MonthLabel(slip.Month),
		BasicSalary:         slip.BasicSalary.StringFixed(2),
		ConveyanceAllowance: slip.ConveyanceAllowance.StringFixed(2),
		MedicalAllowance:    slip.MedicalAllowance.StringFixed(2),
		OtherAllowances:     slip.OtherAllowances.StringFixed(2),
		GrossEarnings:       slip.GrossEarnings.StringFixed(2),
		ProvidentFund:       slip.ProvidentFund.StringFixed(2),
		ProfessionalTax:     slip.ProfessionalTax.StringFixed(2),
		IncomeTax:           slip.IncomeTax.StringFixed(2),
		OtherDeductions:     slip.OtherDeductions.StringFixed(2),
		TotalDeductions:     slip.TotalDeductions.StringFixed(2),
		NetSalary:           slip.NetSalary.StringFixed(2),
	}
	if e := slip.Employee; e != nil {
		v.FirstName = e.FirstName
		v.LastName = e.LastName
		v.Department = e.Department
		v.Designation = e.Designation
		if e.EmployeeCode != nil {
			v.EmployeeID = *e.EmployeeCode
		}
		if e.Email != nil {
			v.Email = *e.Email
		}
	}
	return v
}
