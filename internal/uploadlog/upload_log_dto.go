package uploadlog

import "time"

type UploadLogResponse struct {
	ID               string    `json:"id"`
	FileName         string    `json:"file_name"`
	UploadTime       time.Time `json:"upload_time"`
	Status           string    `json:"status"`
	TotalRecords     int       `json:"total_records"`
	ProcessedRecords int       `json:"processed_records"`
	ErrorLog         string    `json:"error_log"`
}

func ToResponse(l UploadLog) UploadLogResponse {
	return UploadLogResponse{
		ID:               l.ID.String(),
		FileName:         l.FileName,
		UploadTime:       l.UploadTime,
		Status:           l.Status,
		TotalRecords:     l.TotalRecords,
		ProcessedRecords: l.ProcessedRecords,
		ErrorLog:         l.ErrorLog,
	}
}
