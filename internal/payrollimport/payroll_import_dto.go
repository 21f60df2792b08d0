package payrollimport

import "github.com/ibrahim77gh/salary-portal-backend/internal/uploadlog"

const SuccessMessage = "Spreadsheet processed successfully, background task started for salary slip generation"

type ImportResponse struct {
	Message   string                      `json:"message"`
	UploadLog uploadlog.UploadLogResponse `json:"upload_log"`
}
