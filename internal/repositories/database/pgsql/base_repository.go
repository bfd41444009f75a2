package pgsql

import (
	"errors"
	"fmt"

	"github.com/SscSPs/vidtube_backend/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// uniqueViolation is the PostgreSQL SQLSTATE for a unique index collision.
const uniqueViolation = "23505"

// uniqueConstraintFields maps unique constraint names to the request field they guard.
var uniqueConstraintFields = map[string]string{
	"users_username_key": "username",
	"users_email_key":    "email",
}

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	Pool *pgxpool.Pool
}

// translateError maps driver errors to application errors. op describes the failed
// operation and is used as the wrap prefix for anything not translated.
func (r *BaseRepository) translateError(err error, op string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		field, ok := uniqueConstraintFields[pgErr.ConstraintName]
		if !ok {
			return fmt.Errorf("%s: %w", op, apperrors.ErrDuplicate)
		}
		return apperrors.NewValidationError(apperrors.FieldError{
			Field:   field,
			Rule:    apperrors.RuleUnique,
			Message: field + " is already taken",
		})
	}
	return fmt.Errorf("%s: %w", op, err)
}
