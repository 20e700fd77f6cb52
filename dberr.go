package users

import (
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Postgres SQLSTATE codes we translate into client errors. Anything else
// is an internal fault.
const (
	pgUniqueViolation           = "23505"
	pgForeignKeyViolation       = "23503"
	pgNotNullViolation          = "23502"
	pgInvalidTextRepresentation = "22P02"
	pgInvalidDatetimeFormat     = "22007"
)

// pgError is the driver-level shape of a postgres error. pgdriver.Error
// satisfies it; the indirection keeps the translator testable without a
// live connection.
type pgError interface {
	Field(byte) string
}

var _ pgError = pgdriver.Error{}

// TranslateDBError converts storage faults into the package error
// taxonomy. Recognized business errors (a rich error with a non internal
// category) pass through untouched; record-not-found maps to NotFound;
// constraint violations map to Conflict or BadRequest; everything else is
// logged and collapsed into a generic internal error so driver details
// never reach a client.
func TranslateDBError(logger Logger, err error, context string) error {
	if err == nil {
		return nil
	}

	if logger == nil {
		logger = defLogger{}
	}

	var richErr *errors.Error
	if errors.As(err, &richErr) && richErr.Category != errors.CategoryInternal {
		return richErr
	}

	if repository.IsRecordNotFound(err) || stderrors.Is(err, sql.ErrNoRows) {
		return errors.Wrap(err, errors.CategoryNotFound, "Resource not found").
			WithCode(errors.CodeNotFound)
	}

	var pgErr pgError
	if stderrors.As(err, &pgErr) {
		code := pgErr.Field('C')
		logger.Error("database error",
			"code", code,
			"detail", pgErr.Field('D'),
			"constraint", pgErr.Field('n'),
			"table", pgErr.Field('t'),
			"context", context,
		)

		switch code {
		case pgUniqueViolation:
			return errors.Wrap(err, errors.CategoryConflict, "The record already exists").
				WithTextCode("DUPLICATE_RECORD").
				WithCode(errors.CodeConflict)
		case pgForeignKeyViolation:
			return errors.Wrap(err, errors.CategoryBadInput, "Related record does not exist").
				WithCode(errors.CodeBadRequest)
		case pgNotNullViolation:
			return errors.Wrap(err, errors.CategoryBadInput, "A required field is missing").
				WithCode(errors.CodeBadRequest)
		case pgInvalidTextRepresentation, pgInvalidDatetimeFormat:
			return errors.Wrap(err, errors.CategoryBadInput, "Invalid value format").
				WithCode(errors.CodeBadRequest)
		}
	}

	// sqlite reports constraint failures as plain strings; tests and the
	// example app run on the sqliteshim driver.
	if isSQLiteUniqueViolation(err) {
		logger.Error("database error", "error", err, "context", context)
		return errors.Wrap(err, errors.CategoryConflict, "The record already exists").
			WithTextCode("DUPLICATE_RECORD").
			WithCode(errors.CodeConflict)
	}

	logger.Error("database error", "error", err, "context", context)
	return errors.Wrap(err, errors.CategoryInternal, "Internal server error").
		WithCode(errors.CodeInternal)
}

func isSQLiteUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "constraint failed: UNIQUE")
}
