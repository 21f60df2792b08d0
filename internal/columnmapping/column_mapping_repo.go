package columnmapping

import (
	"context"
	"database/sql"

	"github.com/ibrahim77gh/salary-portal-backend/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=column_mapping_repo.go -destination=mock/column_mapping_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, m *ColumnMapping) error
	FindAllByUser(ctx context.Context, userID string) ([]ColumnMapping, error)
	FindByIDAndUser(ctx context.Context, userID, id string) (*ColumnMapping, error)
	FindActiveByUser(ctx context.Context, userID string) (*ColumnMapping, error)
	Update(ctx context.Context, m *ColumnMapping) error
	Delete(ctx context.Context, userID, id string) error
	DeactivateOthers(ctx context.Context, userID, keepID string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, m *ColumnMapping) error {
	return r.conn(ctx).Create(m).Error
}

func (r *repository) FindAllByUser(ctx context.Context, userID string) ([]ColumnMapping, error) {
	var mappings []ColumnMapping
	err := r.conn(ctx).
		Scopes(tenant.Scope(userID)).
		Order("is_active DESC, name ASC").
		Find(&mappings).Error
	return mappings, err
}

func (r *repository) FindByIDAndUser(ctx context.Context, userID, id string) (*ColumnMapping, error) {
	var m ColumnMapping
	err := r.conn(ctx).
		Scopes(tenant.Scope(userID)).
		First(&m, "id = ?", id).Error
	return &m, err
}

func (r *repository) FindActiveByUser(ctx context.Context, userID string) (*ColumnMapping, error) {
	var m ColumnMapping
	err := r.conn(ctx).
		Scopes(tenant.Scope(userID)).
		Where("is_active = ?", true).
		Order("updated_at DESC").
		First(&m).Error
	return &m, err
}

func (r *repository) Update(ctx context.Context, m *ColumnMapping) error {
	return r.conn(ctx).Save(m).Error
}

func (r *repository) Delete(ctx context.Context, userID, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.Scope(userID)).
		Delete(&ColumnMapping{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeactivateOthers(ctx context.Context, userID, keepID string) error {
	return r.conn(ctx).
		Model(&ColumnMapping{}).
		Scopes(tenant.Scope(userID)).
		Where("id <> ? AND is_active = ?", keepID, true).
		Update("is_active", false).Error
}
