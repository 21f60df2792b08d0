package salaryslip

import (
	"errors"

	salaryslipserrors "github.com/ibrahim77gh/salary-portal-backend/internal/salaryslip/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salaryslipserrors.ErrSalarySlipNotFound
	}
	return err
}
