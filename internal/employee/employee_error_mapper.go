package employee

import (
	"context"
	"errors"

	employeeerrors "go-nexushr/internal/employee/errors"
	"go-nexushr/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation       = "23505"
	pgCheckViolation        = "23514"
	pgSerializationFailure  = "40001"
	workloadRangeConstraint = "chk_employees_workload_range"
)

// mapRepositoryError keeps known store failures typed and passes anything
// else through with the store's own message.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgCheckViolation && pgErr.ConstraintName == workloadRangeConstraint:
			return employeeerrors.ErrWorkloadOutOfRange
		case pgErr.Code == pgSerializationFailure, pgErr.Code == pgUniqueViolation:
			return employeeerrors.ErrEmployeeConflict.WithErr(err)
		}
	}

	return apperror.Remote(err)
}
