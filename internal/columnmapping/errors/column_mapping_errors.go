package columnmappingerrors

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
)

var (
	ErrColumnMappingNotFound = apperror.New(
		apperror.CodeNotFound,
		"Column mapping not found",
		http.StatusNotFound,
	)
	ErrInvalidColumnMappingID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid column mapping ID",
		http.StatusBadRequest,
	)
)
