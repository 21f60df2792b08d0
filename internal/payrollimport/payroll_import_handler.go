package payrollimport

import (
	"errors"
	"net/http"

	payrollimporterrors "github.com/ibrahim77gh/salary-portal-backend/internal/payrollimport/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service        Service
	maxUploadBytes int64
}

// NewHandler rejects request bodies larger than maxUploadBytes; zero disables the limit.
func NewHandler(service Service, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTPWithCause(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Upload(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeServiceError(c, payrollimporterrors.ErrFileTooLarge)
			return
		}
		h.writeServiceError(c, payrollimporterrors.ErrNoFileUploaded)
		return
	}

	file, err := header.Open()
	if err != nil {
		h.writeServiceError(c, payrollimporterrors.ErrNoFileUploaded)
		return
	}
	defer file.Close()

	resp, err := h.service.Import(c.Request.Context(), c.GetString("user_id_validated"), header.Filename, file)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
