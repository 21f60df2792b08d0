package notification

import (
	"context"

	"github.com/ibrahim77gh/salary-portal-backend/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=notification_repo.go -destination=mock/notification_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, n *Notification) error
	FindAllByUser(ctx context.Context, userID string) ([]Notification, error)
	FindByIDAndUser(ctx context.Context, userID, id string) (*Notification, error)
	Update(ctx context.Context, n *Notification) error
	MarkAllReadByUser(ctx context.Context, userID string) (int64, error)
	CountUnreadByUser(ctx context.Context, userID string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]Notification, error) {
	var items []Notification
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID, id string) (*Notification, error) {
	var n Notification
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(userID)).
		First(&n, "id = ?", id).Error
	return &n, err
}

func (r *repository) Update(ctx context.Context, n *Notification) error {
	return r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", n.ID, n.UserID).
		Update("is_read", n.IsRead).Error
}

func (r *repository) MarkAllReadByUser(ctx context.Context, userID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(userID)).
		Where("is_read = ?", false).
		Update("is_read", true)
	return res.RowsAffected, res.Error
}

func (r *repository) CountUnreadByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Scopes(tenant.Scope(userID)).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}
