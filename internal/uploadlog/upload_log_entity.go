package uploadlog

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

type UploadLog struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_upload_log_user_time"`
	FileName         string    `gorm:"type:varchar(255);not null"`
	UploadTime       time.Time `gorm:"not null;index:idx_upload_log_user_time"`
	Status           string    `gorm:"type:varchar(10);not null;default:'PENDING'"`
	TotalRecords     int       `gorm:"not null;default:0"`
	ProcessedRecords int       `gorm:"not null;default:0"`
	ErrorLog         string    `gorm:"type:text;not null;default:''"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// RowError formats the audit line for a failed data row. row is zero based.
func RowError(row int, err error) string {
	return fmt.Sprintf("Error processing row %d: %v\n", row+1, err)
}

func (l *UploadLog) appendError(line string) {
	l.ErrorLog += line
}

func (l *UploadLog) IsTerminal() bool {
	return l.Status == StatusCompleted || l.Status == StatusFailed
}
