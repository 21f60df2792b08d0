package employee

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	employeeerrors "github.com/ibrahim77gh/salary-portal-backend/internal/employee/errors"
	"github.com/ibrahim77gh/salary-portal-backend/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	// GetOrCreateByCode resolves an employee by its external identifier and
	// creates it from the imported columns when it does not exist yet.
	GetOrCreateByCode(ctx context.Context, in ImportedEmployee) (*Employee, bool, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		logger: l,
	}
}

func (s *service) log(ctx context.Context) *zap.Logger {
	return contextutil.GetLogger(ctx, s.logger)
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	log.Debug("create employee requested",
		zap.String("employee_code", req.EmployeeCode),
		zap.String("email", req.Email),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	empl := &Employee{
		ID:           uuid.New(),
		EmployeeCode: nullableString(req.EmployeeCode),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        nullableString(req.Email),
		Department:   strings.TrimSpace(req.Department),
		Designation:  strings.TrimSpace(req.Designation),
	}

	if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("create employee success", zap.String("employee_id", empl.ID.String()))
	return mapToResponse(*empl), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.log(ctx).Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(employees), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log(ctx).Warn("get employee by id failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := s.log(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		log.Warn("update employee fetch existing failed", zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl.EmployeeCode = nullableString(req.EmployeeCode)
	empl.FirstName = strings.TrimSpace(req.FirstName)
	empl.LastName = strings.TrimSpace(req.LastName)
	empl.Email = nullableString(req.Email)
	empl.Department = strings.TrimSpace(req.Department)
	empl.Designation = strings.TrimSpace(req.Designation)

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*empl), nil
}

// Delete leaves the employee's salary slips in place; their employee_id is
// cleared by the foreign key.
func (s *service) Delete(ctx context.Context, id string) error {
	log := s.log(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		log.Warn("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func (s *service) GetOrCreateByCode(ctx context.Context, in ImportedEmployee) (*Employee, bool, error) {
	code := strings.TrimSpace(in.EmployeeCode)
	if code == "" {
		return nil, false, employeeerrors.ErrEmployeeCodeRequired
	}

	empl, err := s.repo.FindByCode(ctx, code)
	if err == nil {
		return empl, false, nil
	}
	if !errors.Is(mapRepositoryError(err), employeeerrors.ErrEmployeeNotFound) {
		return nil, false, err
	}

	empl = &Employee{
		ID:           uuid.New(),
		EmployeeCode: &code,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        nullableString(in.Email),
	}
	if err := s.repo.Create(ctx, empl); err != nil {
		// a concurrent import created the same code first
		if uniqueConstraint(err) == "uq_employee_code" {
			existing, findErr := s.repo.FindByCode(ctx, code)
			if findErr != nil {
				return nil, false, findErr
			}
			return existing, false, nil
		}
		return nil, false, mapRepositoryError(err)
	}

	s.log(ctx).Debug("employee created from import",
		zap.String("employee_id", empl.ID.String()),
		zap.String("employee_code", code),
	)
	return empl, true, nil
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:           empl.ID.String(),
		EmployeeCode: stringValue(empl.EmployeeCode),
		FirstName:    empl.FirstName,
		LastName:     empl.LastName,
		Email:        stringValue(empl.Email),
		Department:   empl.Department,
		Designation:  empl.Designation,
		CreatedAt:    empl.CreatedAt,
	}
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
