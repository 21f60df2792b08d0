package employee

import "time"

type CreateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"omitempty,max=100"`
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	Email        string `json:"email" binding:"omitempty,email"`
	Department   string `json:"department" binding:"max=100"`
	Designation  string `json:"designation" binding:"max=100"`
}

type UpdateEmployeeRequest struct {
	EmployeeCode string `json:"employee_code" binding:"omitempty,max=100"`
	FirstName    string `json:"first_name" binding:"required,max=100"`
	LastName     string `json:"last_name" binding:"max=100"`
	Email        string `json:"email" binding:"omitempty,email"`
	Department   string `json:"department" binding:"max=100"`
	Designation  string `json:"designation" binding:"max=100"`
}

type EmployeeResponse struct {
	ID           string    `json:"id"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email,omitempty"`
	Department   string    `json:"department,omitempty"`
	Designation  string    `json:"designation,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
