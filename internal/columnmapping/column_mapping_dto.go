package columnmapping

import "time"

type HeadersRequest struct {
	EmployeeID          string `json:"employee_id" binding:"max=255"`
	FirstName           string `json:"first_name" binding:"max=255"`
	LastName            string `json:"last_name" binding:"max=255"`
	Email               string `json:"email" binding:"max=255"`
	BasicSalary         string `json:"basic_salary" binding:"max=255"`
	ConveyanceAllowance string `json:"conveyance_allowance" binding:"max=255"`
	MedicalAllowance    string `json:"medical_allowance" binding:"max=255"`
	OtherAllowances     string `json:"other_allowances" binding:"max=255"`
	ProvidentFund       string `json:"provident_fund" binding:"max=255"`
	ProfessionalTax     string `json:"professional_tax" binding:"max=255"`
	IncomeTax           string `json:"income_tax" binding:"max=255"`
	OtherDeductions     string `json:"other_deductions" binding:"max=255"`
}

// ColumnMappingRequest is used for create and update. Blank headers take the
// default header name.
type ColumnMappingRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	IsActive bool   `json:"is_active"`
	HeadersRequest
}

type ColumnMappingResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"is_active"`
	Headers   Mapping   `json:"headers"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ResolvedMappingResponse struct {
	ID        *string `json:"id"`
	Name      string  `json:"name"`
	IsDefault bool    `json:"is_default"`
	Headers   Mapping `json:"headers"`
}
