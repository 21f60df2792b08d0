package columnmapping

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	columnmappingerrors "github.com/ibrahim77gh/salary-portal-backend/internal/columnmapping/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/apperror"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultMappingName = "Default"

//go:generate mockgen -source=column_mapping_service.go -destination=mock/column_mapping_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, userID string, req ColumnMappingRequest) (ColumnMappingResponse, error)
	GetAll(ctx context.Context, userID string) ([]ColumnMappingResponse, error)
	GetByID(ctx context.Context, userID, id string) (ColumnMappingResponse, error)
	Update(ctx context.Context, userID, id string, req ColumnMappingRequest) (ColumnMappingResponse, error)
	Delete(ctx context.Context, userID, id string) error
	Activate(ctx context.Context, userID, id string) (ColumnMappingResponse, error)
	// Resolve returns the user's active mapping or the default one. Only
	// storage failures are errors.
	Resolve(ctx context.Context, userID string) (Mapping, error)
	GetActive(ctx context.Context, userID string) (ResolvedMappingResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("columnmapping.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("columnmapping.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, userID string, req ColumnMappingRequest) (ColumnMappingResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return ColumnMappingResponse{}, apperror.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ColumnMappingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	m := &ColumnMapping{
		ID:       uuid.New(),
		UserID:   userUUID,
		Name:     strings.TrimSpace(req.Name),
		IsActive: req.IsActive,
		Mapping:  toMapping(req.HeadersRequest),
	}

	// the single active mapping is swapped before the new one lands
	if m.IsActive {
		if err := qtx.DeactivateOthers(ctx, userID, m.ID.String()); err != nil {
			return ColumnMappingResponse{}, err
		}
	}
	if err := qtx.Create(ctx, m); err != nil {
		s.log(ctx).Error("create column mapping failed", zap.Error(err))
		return ColumnMappingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ColumnMappingResponse{}, err
	}

	s.log(ctx).Info("column mapping created",
		zap.String("column_mapping_id", m.ID.String()),
		zap.Bool("is_active", m.IsActive),
	)
	return mapToResponse(*m), nil
}

func (s *service) GetAll(ctx context.Context, userID string) ([]ColumnMappingResponse, error) {
	mappings, err := s.repo.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := make([]ColumnMappingResponse, len(mappings))
	for i, m := range mappings {
		resp[i] = mapToResponse(m)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, userID, id string) (ColumnMappingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ColumnMappingResponse{}, columnmappingerrors.ErrInvalidColumnMappingID
	}

	m, err := s.repo.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return ColumnMappingResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*m), nil
}

func (s *service) Update(ctx context.Context, userID, id string, req ColumnMappingRequest) (ColumnMappingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ColumnMappingResponse{}, columnmappingerrors.ErrInvalidColumnMappingID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ColumnMappingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	m, err := qtx.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return ColumnMappingResponse{}, mapRepositoryError(err)
	}

	m.Name = strings.TrimSpace(req.Name)
	m.IsActive = req.IsActive
	m.Mapping = toMapping(req.HeadersRequest)

	if m.IsActive {
		if err := qtx.DeactivateOthers(ctx, userID, id); err != nil {
			return ColumnMappingResponse{}, err
		}
	}
	if err := qtx.Update(ctx, m); err != nil {
		s.log(ctx).Error("update column mapping failed", zap.Error(err))
		return ColumnMappingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ColumnMappingResponse{}, err
	}

	return mapToResponse(*m), nil
}

func (s *service) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return columnmappingerrors.ErrInvalidColumnMappingID
	}

	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return mapRepositoryError(err)
	}
	return nil
}

func (s *service) Activate(ctx context.Context, userID, id string) (ColumnMappingResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return ColumnMappingResponse{}, columnmappingerrors.ErrInvalidColumnMappingID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ColumnMappingResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	m, err := qtx.FindByIDAndUser(ctx, userID, id)
	if err != nil {
		return ColumnMappingResponse{}, mapRepositoryError(err)
	}

	if err := qtx.DeactivateOthers(ctx, userID, id); err != nil {
		return ColumnMappingResponse{}, err
	}
	m.IsActive = true
	if err := qtx.Update(ctx, m); err != nil {
		return ColumnMappingResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ColumnMappingResponse{}, err
	}

	s.log(ctx).Info("column mapping activated", zap.String("column_mapping_id", id))
	return mapToResponse(*m), nil
}

func (s *service) Resolve(ctx context.Context, userID string) (Mapping, error) {
	resolved, err := s.GetActive(ctx, userID)
	if err != nil {
		return Mapping{}, err
	}
	return resolved.Headers, nil
}

func (s *service) GetActive(ctx context.Context, userID string) (ResolvedMappingResponse, error) {
	m, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ResolvedMappingResponse{
				Name:      DefaultMappingName,
				IsDefault: true,
				Headers:   DefaultMapping(),
			}, nil
		}
		s.log(ctx).Error("resolve column mapping failed", zap.String("user_id", userID), zap.Error(err))
		return ResolvedMappingResponse{}, err
	}

	id := m.ID.String()
	return ResolvedMappingResponse{
		ID:      &id,
		Name:    m.Name,
		Headers: m.Mapping.WithDefaults(),
	}, nil
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return columnmappingerrors.ErrColumnMappingNotFound
	}
	return err
}

func toMapping(req HeadersRequest) Mapping {
	return Mapping(req).WithDefaults()
}

func mapToResponse(m ColumnMapping) ColumnMappingResponse {
	return ColumnMappingResponse{
		ID:        m.ID.String(),
		Name:      m.Name,
		IsActive:  m.IsActive,
		Headers:   m.Mapping,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
