package notificationerrors

import (
	"net/http"

	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid notification ID",
		http.StatusBadRequest,
	)
	ErrEmptyMessage = apperror.New(
		apperror.CodeInvalidInput,
		"Notification message is required",
		http.StatusBadRequest,
	)
)
