package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/Taichi-iskw/yt-export/internal/errors"
)

// handlePostgreSQLError converts PostgreSQL-specific errors to AppError codes.
// operation is used as the message for anything not mapped below.
func handlePostgreSQLError(err error, operation string) *apperrors.AppError {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return apperrors.Wrap(err, apperrors.CodeInternal, operation)
	}

	switch pgErr.Code {
	case "23505": // unique_violation
		return handleUniqueViolation(pgErr)

	case "23503": // foreign_key_violation
		return handleForeignKeyViolation(pgErr)

	case "23502": // not_null_violation
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "required field is missing: "+pgErr.ColumnName)

	case "23514": // check_violation
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "data violates check constraint")

	case "22003": // numeric_value_out_of_range
		return apperrors.Wrap(err, apperrors.CodeInvalidArg, "count exceeds column range")

	case "42P01": // undefined_table
		return apperrors.Wrap(err, apperrors.CodeInternal, "mirror schema missing: run migrations")

	case "42703": // undefined_column
		return apperrors.Wrap(err, apperrors.CodeInternal, "mirror schema out of date: column not found")

	case "08000", "08003", "08006":
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection error")

	case "53300": // too_many_connections
		return apperrors.Wrap(err, apperrors.CodeInternal, "database connection limit reached")

	default:
		return apperrors.Wrap(err, apperrors.CodeInternal, operation+" (PostgreSQL code: "+pgErr.Code+")")
	}
}

func handleUniqueViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	constraintName := pgErr.ConstraintName

	switch {
	case strings.HasPrefix(constraintName, "channels"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "channel with this ID already exists")
	case strings.HasPrefix(constraintName, "videos"):
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "video with this ID already exists")
	default:
		return apperrors.Wrap(pgErr, apperrors.CodeConflict, "resource already exists")
	}
}

func handleForeignKeyViolation(pgErr *pgconn.PgError) *apperrors.AppError {
	if strings.Contains(pgErr.ConstraintName, "channel_id") {
		return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced channel is not mirrored")
	}
	return apperrors.Wrap(pgErr, apperrors.CodeDependency, "referenced resource does not exist")
}
