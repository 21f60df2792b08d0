package employee

import (
	"errors"
	"strings"

	employeeerrors "github.com/ibrahim77gh/salary-portal-backend/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	switch uniqueConstraint(err) {
	case "uq_employee_code":
		return employeeerrors.ErrEmployeeCodeExists
	case "uq_employee_email":
		return employeeerrors.ErrEmployeeEmailExists
	}

	return err
}

// uniqueConstraint returns the violated unique constraint name, or "" when err
// is not a unique violation.
func uniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return pgErr.ConstraintName
		}
		return ""
	}

	errMsg := strings.ToLower(err.Error())
	if !strings.Contains(errMsg, "duplicate key value") && !strings.Contains(errMsg, "unique constraint failed") {
		return ""
	}
	for _, name := range []string{"uq_employee_code", "uq_employee_email"} {
		if strings.Contains(errMsg, name) {
			return name
		}
	}
	// sqlite reports columns rather than index names
	if strings.Contains(errMsg, "employees.employee_code") {
		return "uq_employee_code"
	}
	if strings.Contains(errMsg, "employees.email") {
		return "uq_employee_email"
	}
	return ""
}
