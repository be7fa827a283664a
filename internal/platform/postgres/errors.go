package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/todo-api/internal/store"
)

// PostgreSQL error codes
const (
	// notNullViolationCode is raised when a NOT NULL column receives NULL.
	notNullViolationCode = "23502"

	// checkViolationCode is raised when a CHECK constraint fails.
	checkViolationCode = "23514"

	// stringTooLongCode is raised when a value exceeds its column width.
	stringTooLongCode = "22001"

	// connectionExceptionClass is the SQLSTATE class for connection failures.
	connectionExceptionClass = "08"

	// insufficientResourcesClass covers too_many_connections and friends.
	insufficientResourcesClass = "53"

	// operatorInterventionClass covers admin_shutdown and cannot_connect_now.
	operatorInterventionClass = "57"
)

// MapError maps a database error to a store error.
// The original error stays wrapped so it can still be inspected with errors.As.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case notNullViolationCode:
			return fmt.Errorf(
				"%w: not null violation (%s): %w",
				store.ErrInvalidEntity,
				pgErr.ColumnName,
				err,
			)
		case checkViolationCode:
			return fmt.Errorf(
				"%w: check constraint violation (%s): %w",
				store.ErrInvalidEntity,
				pgErr.ConstraintName,
				err,
			)
		case stringTooLongCode:
			return fmt.Errorf("%w: value too long: %w", store.ErrInvalidEntity, err)
		}

		if len(pgErr.Code) >= 2 {
			switch pgErr.Code[:2] {
			case connectionExceptionClass, insufficientResourcesClass, operatorInterventionClass:
				return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
			}
		}
		return err
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", store.ErrUnavailable, err)
	}

	return err
}

// IsNotNullViolation reports whether err is a PostgreSQL NOT NULL violation.
func IsNotNullViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == notNullViolationCode
}

// IsCheckConstraintViolation reports whether err is a PostgreSQL CHECK violation.
func IsCheckConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == checkViolationCode
}

// CheckRowsAffected returns store.ErrTaskNotFound when result touched no rows.
// Owner-scoped DELETE statements use it, since a missing row and a row owned
// by someone else look the same from here.
func CheckRowsAffected(result sql.Result) error {
	if result == nil {
		return fmt.Errorf("nil result provided to CheckRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}
