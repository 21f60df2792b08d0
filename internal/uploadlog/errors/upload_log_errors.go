package uploadlogerrors

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
)

var (
	ErrUploadLogNotFound = apperror.New(
		apperror.CodeNotFound,
		"Upload log not found",
		http.StatusNotFound,
	)
	ErrInvalidUploadLogID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid upload log ID",
		http.StatusBadRequest,
	)
	ErrUploadLogClosed = apperror.New(
		apperror.CodeInvalidState,
		"Upload log is already closed",
		http.StatusConflict,
	)
)
