package uploadlog

import (
	"context"

	"github.com/ibrahim77gh/salary-portal-backend/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=upload_log_repo.go -destination=mock/upload_log_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, l *UploadLog) error
	Update(ctx context.Context, l *UploadLog) error
	FindAllByUser(ctx context.Context, userID string) ([]UploadLog, error)
	FindByIDAndUser(ctx context.Context, userID, id string) (*UploadLog, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, l *UploadLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// Update writes the progress columns only. Each call commits on its own so a
// crash mid upload leaves the last reported progress.
func (r *repository) Update(ctx context.Context, l *UploadLog) error {
	return r.db.WithContext(ctx).
		Model(&UploadLog{}).
		Where("id = ?", l.ID).
		Updates(map[string]any{
			"status":            l.Status,
			"total_records":     l.TotalRecords,
			"processed_records": l.ProcessedRecords,
			"error_log":         l.ErrorLog,
		}).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]UploadLog, error) {
	var logs []UploadLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Order("upload_time DESC").
		Find(&logs).Error
	return logs, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID, id string) (*UploadLog, error) {
	var l UploadLog
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		First(&l, "id = ?", id).Error
	return &l, err
}
