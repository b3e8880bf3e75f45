package errors

import (
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// SQLSTATE classes the run archive can hit
const (
	sqlUniqueViolation  = "23505"
	sqlNotNullViolation = "23502"
	sqlCheckViolation   = "23514"
	sqlTruncation       = "22001"
	sqlBadTextRepr      = "22P02"
	sqlUndefinedTable   = "42P01"
	sqlQueryCanceled    = "57014" // statement_timeout
	sqlReadOnly         = "25006"
	sqlCannotConnectNow = "57P03"
)

// PgError returns the *pgconn.PgError at the root of err
func PgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if stderrs.As(Root(err), &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// DBErrorCode classifies a postgres error
// ok is false when err carries no *pgconn.PgError
func DBErrorCode(err error) (code ErrorCode, ok bool) {
	pgErr, ok := PgError(err)
	if !ok {
		return ErrorCodeUnknown, false
	}
	switch pgErr.Code {
	case sqlUniqueViolation:
		return ErrorCodeDuplicateKey, true
	case sqlNotNullViolation, sqlCheckViolation:
		return ErrorCodeValidation, true
	case sqlTruncation, sqlBadTextRepr:
		return ErrorCodeInvalidArgument, true
	case sqlQueryCanceled, sqlReadOnly, sqlCannotConnectNow, sqlUndefinedTable:
		// the archive is degraded, not the request
		return ErrorCodeUnavailable, true
	}
	return ErrorCodeDB, true
}

// FromPostgres wraps err with msg and the code DBErrorCode picks
// anything that is not a postgres error becomes ErrorCodeDB; nil stays nil
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	code, ok := DBErrorCode(err)
	if !ok {
		code = ErrorCodeDB
	}
	e := &Error{code: code, msg: msg, orig: err}
	if pgErr, ok := PgError(err); ok && pgErr.ColumnName != "" {
		e.field = pgErr.ColumnName
	}
	return e
}
