package apperror

import (
	"errors"
	"net/http"
)

type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP flattens any error into the response envelope fields. Errors that are
// not AppErrors surface as ErrInternal; their text stays server side.
func ToHTTP(err error) HTTPError {
	httpErr, known := toHTTP(err)
	if !known {
		httpErr.Message = ErrInternal.Message
	}
	return httpErr
}

// ToHTTPWithCause is ToHTTP, except an unknown error keeps its raw message.
// The upload endpoint reports processing failures this way.
func ToHTTPWithCause(err error) HTTPError {
	httpErr, _ := toHTTP(err)
	return httpErr
}

func toHTTP(err error) (HTTPError, bool) {
	if err == nil {
		return HTTPError{Status: http.StatusOK}, true
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusInternalServerError
		}
		var details any
		if appErr.Err != nil {
			details = appErr.Err.Error()
		}
		return HTTPError{
			Status:  status,
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: details,
		}, true
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: err.Error(),
	}, false
}
