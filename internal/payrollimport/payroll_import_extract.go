package payrollimport

import (
	"fmt"
	"strings"

	"github.com/ibrahim77gh/salary-portal-backend/internal/columnmapping"
	payrollimporterrors "github.com/ibrahim77gh/salary-portal-backend/internal/payrollimport/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip"
	"github.com/ibrahim77gh/salary-portal-backend/internal/spreadsheet"

	"github.com/shopspring/decimal"
)

// Column is one canonical field read from the sheet. An absent column reads
// as blank for every row.
type Column struct {
	Header  string
	Values  []string
	Present bool
}

func (c Column) At(i int) string {
	if !c.Present || i < 0 || i >= len(c.Values) {
		return ""
	}
	return strings.TrimSpace(c.Values[i])
}

// Amount parses row i as a money value. Absent columns and blank cells are zero.
func (c Column) Amount(i int) (decimal.Decimal, error) {
	raw := c.At(i)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value %q", c.Header, raw)
	}
	return d.Round(2), nil
}

type Extracted struct {
	EmployeeID Column
	FirstName  Column
	LastName   Column
	Email      Column

	BasicSalary         Column
	ConveyanceAllowance Column
	MedicalAllowance    Column
	OtherAllowances     Column
	ProvidentFund       Column
	ProfessionalTax     Column
	IncomeTax           Column
	OtherDeductions     Column
}

// Rows is the number of data rows, taken from the employee identifier column.
func (e Extracted) Rows() int {
	return len(e.EmployeeID.Values)
}

// Components reads the eight monetary cells of row i.
func (e Extracted) Components(i int) (salaryslip.Components, error) {
	var (
		c   salaryslip.Components
		err error
	)
	fields := []struct {
		col Column
		dst *decimal.Decimal
	}{
		{e.BasicSalary, &c.BasicSalary},
		{e.ConveyanceAllowance, &c.ConveyanceAllowance},
		{e.MedicalAllowance, &c.MedicalAllowance},
		{e.OtherAllowances, &c.OtherAllowances},
		{e.ProvidentFund, &c.ProvidentFund},
		{e.ProfessionalTax, &c.ProfessionalTax},
		{e.IncomeTax, &c.IncomeTax},
		{e.OtherDeductions, &c.OtherDeductions},
	}
	for _, f := range fields {
		if *f.dst, err = f.col.Amount(i); err != nil {
			return salaryslip.Components{}, err
		}
	}
	return c, nil
}

func Extract(table *spreadsheet.Table, m columnmapping.Mapping) (Extracted, error) {
	col := func(header string) Column {
		values, ok := table.Column(header)
		return Column{Header: header, Values: values, Present: ok}
	}

	e := Extracted{
		EmployeeID:          col(m.EmployeeID),
		FirstName:           col(m.FirstName),
		LastName:            col(m.LastName),
		Email:               col(m.Email),
		BasicSalary:         col(m.BasicSalary),
		ConveyanceAllowance: col(m.ConveyanceAllowance),
		MedicalAllowance:    col(m.MedicalAllowance),
		OtherAllowances:     col(m.OtherAllowances),
		ProvidentFund:       col(m.ProvidentFund),
		ProfessionalTax:     col(m.ProfessionalTax),
		IncomeTax:           col(m.IncomeTax),
		OtherDeductions:     col(m.OtherDeductions),
	}
	if !e.EmployeeID.Present {
		return Extracted{}, payrollimporterrors.ErrEmployeeIDColumnMissing
	}
	return e, nil
}
