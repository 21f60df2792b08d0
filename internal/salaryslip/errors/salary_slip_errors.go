package salaryslipserrors

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
)

var (
	ErrSalarySlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary slip not found",
		http.StatusNotFound,
	)
	ErrInvalidSalarySlipID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid salary slip ID",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"Employee does not exist",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrSlipsNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"One or more salary slips do not exist",
		http.StatusBadRequest,
	)
	ErrPDFNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"Salary slip PDF has not been generated yet",
		http.StatusNotFound,
	)
	ErrQueueUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Salary slip disbursement is not available",
		http.StatusServiceUnavailable,
	)
)
