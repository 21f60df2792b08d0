package employee_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/ibrahim77gh/salary-portal-backend/internal/employee"
	employeeerrors "github.com/ibrahim77gh/salary-portal-backend/internal/employee/errors"
	employeeMock "github.com/ibrahim77gh/salary-portal-backend/internal/employee/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service employee.Service
	repo    *employeeMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := employeeMock.NewMockRepository(ctrl)

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: employee.NewService(db, repo),
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func strPtr(v string) *string { return &v }

func TestEmployeeService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success - blank email stored as null", func(t *testing.T) {
		deps := setupServiceTest(t)
		req := employee.CreateEmployeeRequest{
			EmployeeCode: " EMP-001 ",
			FirstName:    "Jane",
			LastName:     "Doe",
			Department:   "Finance",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "EMP-001", *e.EmployeeCode)
				assert.Nil(t, e.Email)
				assert.NotEqual(t, uuid.Nil, e.ID)
				return nil
			})

		resp, err := deps.service.Create(ctx, req)

		assert.NoError(t, err)
		assert.Equal(t, "EMP-001", resp.EmployeeCode)
		assert.Equal(t, "", resp.Email)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate email -> conflict and rollback", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_email"})

		_, err := deps.service.Create(ctx, employee.CreateEmployeeRequest{FirstName: "Jane", Email: "jane@example.com"})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeEmailExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid id", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.GetByID(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, employeeerrors.ErrInvalidEmployeeID)
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(ctx, id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, id)
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	id := uuid.New()

	expectTx(t, deps.sqlMock, true)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().FindByID(ctx, id.String()).Return(&employee.Employee{
		ID:           id,
		EmployeeCode: strPtr("EMP-9"),
		FirstName:    "Old",
		Email:        strPtr("old@example.com"),
	}, nil)
	deps.repo.EXPECT().
		Update(ctx, gomock.Any()).
		DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
			assert.Equal(t, "New", e.FirstName)
			assert.Equal(t, "Engineer", e.Designation)
			assert.Equal(t, "new@example.com", *e.Email)
			return nil
		})

	resp, err := deps.service.Update(ctx, id.String(), employee.UpdateEmployeeRequest{
		EmployeeCode: "EMP-9",
		FirstName:    "New",
		Email:        "new@example.com",
		Designation:  "Engineer",
	})

	assert.NoError(t, err)
	assert.Equal(t, "New", resp.FirstName)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	id := uuid.NewString()

	expectTx(t, deps.sqlMock, false)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Delete(ctx, id).Return(gorm.ErrRecordNotFound)

	err := deps.service.Delete(ctx, id)
	assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEmployeeService_GetOrCreateByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("existing employee is reused", func(t *testing.T) {
		deps := setupServiceTest(t)
		existing := &employee.Employee{ID: uuid.New(), EmployeeCode: strPtr("E1")}
		deps.repo.EXPECT().FindByCode(ctx, "E1").Return(existing, nil)

		got, created, err := deps.service.GetOrCreateByCode(ctx, employee.ImportedEmployee{EmployeeCode: " E1 ", FirstName: "Ignored"})

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, existing, got)
	})

	t.Run("missing employee is created from imported columns", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByCode(ctx, "E2").Return(nil, gorm.ErrRecordNotFound)
		deps.repo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(ctx context.Context, e *employee.Employee) error {
				assert.Equal(t, "E2", *e.EmployeeCode)
				assert.Equal(t, "Ann", e.FirstName)
				assert.Equal(t, "", e.LastName)
				assert.Nil(t, e.Email)
				return nil
			})

		got, created, err := deps.service.GetOrCreateByCode(ctx, employee.ImportedEmployee{EmployeeCode: "E2", FirstName: "Ann"})

		assert.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, "Ann", got.FirstName)
	})

	t.Run("concurrent insert falls back to the winner", func(t *testing.T) {
		deps := setupServiceTest(t)
		winner := &employee.Employee{ID: uuid.New(), EmployeeCode: strPtr("E3")}
		gomock.InOrder(
			deps.repo.EXPECT().FindByCode(ctx, "E3").Return(nil, gorm.ErrRecordNotFound),
			deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_code"}),
			deps.repo.EXPECT().FindByCode(ctx, "E3").Return(winner, nil),
		)

		got, created, err := deps.service.GetOrCreateByCode(ctx, employee.ImportedEmployee{EmployeeCode: "E3"})

		assert.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, winner, got)
	})

	t.Run("blank code is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, _, err := deps.service.GetOrCreateByCode(ctx, employee.ImportedEmployee{EmployeeCode: "  "})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeCodeRequired)
	})

	t.Run("lookup failure is returned", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByCode(ctx, "E4").Return(nil, errors.New("conn refused"))

		_, _, err := deps.service.GetOrCreateByCode(ctx, employee.ImportedEmployee{EmployeeCode: "E4"})
		assert.EqualError(t, err, "conn refused")
	})
}
