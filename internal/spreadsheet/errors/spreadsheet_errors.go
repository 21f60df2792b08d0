package spreadsheeterrors

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
)

var (
	ErrInvalidSpreadsheet = apperror.New(
		apperror.CodeInvalidSpreadsheet,
		"Invalid spreadsheet file",
		http.StatusBadRequest,
	)
	ErrNoWorksheet = apperror.New(
		apperror.CodeInvalidSpreadsheet,
		"No worksheet found in spreadsheet",
		http.StatusBadRequest,
	)
)
