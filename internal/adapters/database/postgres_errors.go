package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/shortstay/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/shortstay/backend/pkg/errors"
)

// SQLSTATE codes the adapters translate into conflicts
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqExclusionViolation  = "23P01"
)

func newGoquDB(client *postgres.Client) *goqu.Database {
	return goqu.New("postgres", client.DB())
}

// mapWriteError converts store errors raised by INSERT/UPDATE/DELETE into
// application errors. Constraint violations the services could not
// pre-check become conflicts, everything else is internal.
func mapWriteError(err error, action string) error {
	if err == nil {
		return nil
	}
	if _, ok := apperrors.As(err); ok {
		return err
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation:
			return apperrors.NewConflictErrorWithCause(
				fmt.Sprintf("%s: value already exists (%s)", action, pqErr.Constraint), err)
		case pqExclusionViolation:
			return apperrors.NewConflictErrorWithCause("a booking already exists for the selected period", err)
		case pqForeignKeyViolation:
			return apperrors.NewConflictErrorWithCause(
				fmt.Sprintf("%s: record is still referenced or references a missing record (%s)", action, pqErr.Constraint), err)
		}
	}

	return apperrors.NewInternalError(action, err)
}

// mapReadError converts sql.ErrNoRows into a not found error
func mapReadError(err error, notFoundMessage, action string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(notFoundMessage)
	}
	return apperrors.NewInternalError(action, err)
}

// requireAffected turns a zero-row update or delete into a not found error
func requireAffected(result sql.Result, notFoundMessage string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(notFoundMessage)
	}
	return nil
}
