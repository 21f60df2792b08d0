package payrollimporterrors

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
)

var (
	ErrNoFileUploaded = apperror.New(
		apperror.CodeInvalidInput,
		"No file uploaded",
		http.StatusBadRequest,
	)
	ErrFileTooLarge = apperror.New(
		apperror.CodeInvalidInput,
		"Uploaded file is too large",
		http.StatusRequestEntityTooLarge,
	)
	ErrEmployeeIDColumnMissing = apperror.New(
		apperror.CodeValidationError,
		"Employee ID column not found in spreadsheet",
		http.StatusBadRequest,
	)
)
