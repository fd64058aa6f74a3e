package sqlengine

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	pgCodeUniqueViolation     = "23505"
	pgCodeForeignKeyViolation = "23503"
	pgCodeCheckViolation      = "23514"
	pgCodeLockNotAvailable    = "55P03"
	pgCodeSerialization       = "40001"

	sqliteMsgUnique     = "UNIQUE constraint failed"
	sqliteMsgForeignKey = "FOREIGN KEY constraint failed"
	sqliteMsgCheck      = "CHECK constraint failed"
	sqliteMsgLocked     = "database is locked"
	sqliteMsgBusy       = "SQLITE_BUSY"

	errorTypeNone       = "none"
	errorTypeNotFound   = "not_found"
	errorTypeDuplicate  = "duplicate"
	errorTypeConstraint = "constraint"
	errorTypeBusy       = "busy"
	errorTypeBusiness   = "business_rule"
	errorTypeBuild      = "build_query"
	errorTypeQuery      = "query"
	errorTypeScan       = "scan"
	errorTypeWrite      = "write"
	errorTypeTx         = "transaction"
	errorTypeCanceled   = "canceled"
	errorTypeTimeout    = "timeout"
	errorTypeOther      = "other"
)

// classifyDriverError maps driver specific errors onto the library's sentinel errors.
// Unknown errors are returned unchanged.
func classifyDriverError(err error) error {
	if err == nil {
		return nil
	}

	if code := postgresErrorCode(err); code != "" {
		switch code {
		case pgCodeUniqueViolation:
			return errors.Join(librarystore.ErrDuplicateISBN, err)
		case pgCodeForeignKeyViolation, pgCodeCheckViolation:
			return errors.Join(librarystore.ErrConstraintViolation, err)
		case pgCodeLockNotAvailable, pgCodeSerialization:
			return errors.Join(librarystore.ErrDatabaseBusy, err)
		}

		return err
	}

	msg := err.Error()

	switch {
	case strings.Contains(msg, sqliteMsgUnique):
		return errors.Join(librarystore.ErrDuplicateISBN, err)
	case strings.Contains(msg, sqliteMsgForeignKey), strings.Contains(msg, sqliteMsgCheck):
		return errors.Join(librarystore.ErrConstraintViolation, err)
	case strings.Contains(msg, sqliteMsgLocked), strings.Contains(msg, sqliteMsgBusy):
		return errors.Join(librarystore.ErrDatabaseBusy, err)
	}

	return err
}

// postgresErrorCode extracts the SQLSTATE from lib/pq and pgx errors.
func postgresErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

// errorTypeOf returns a low-cardinality label for metrics and spans.
func errorTypeOf(err error) string {
	switch {
	case err == nil:
		return errorTypeNone
	case errors.Is(err, context.Canceled):
		return errorTypeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return errorTypeTimeout
	case errors.Is(err, librarystore.ErrBookNotFound),
		errors.Is(err, librarystore.ErrMemberNotFound),
		errors.Is(err, librarystore.ErrLoanNotFound):
		return errorTypeNotFound
	case errors.Is(err, librarystore.ErrDuplicateISBN):
		return errorTypeDuplicate
	case errors.Is(err, librarystore.ErrConstraintViolation):
		return errorTypeConstraint
	case errors.Is(err, librarystore.ErrDatabaseBusy):
		return errorTypeBusy
	case errors.Is(err, librarystore.ErrBookNotAvailable),
		errors.Is(err, librarystore.ErrLoanAlreadyReturned),
		errors.Is(err, librarystore.ErrMemberHasLoans),
		errors.Is(err, librarystore.ErrBookHasLoans),
		errors.Is(err, librarystore.ErrNoFieldsToUpdate),
		errors.Is(err, librarystore.ErrAvailabilityOutOfRange),
		errors.Is(err, librarystore.ErrMissingRequiredField),
		errors.Is(err, librarystore.ErrInvalidDate):
		return errorTypeBusiness
	case errors.Is(err, librarystore.ErrBuildingQueryFailed):
		return errorTypeBuild
	case errors.Is(err, librarystore.ErrScanningFailed):
		return errorTypeScan
	case errors.Is(err, librarystore.ErrQueryingFailed):
		return errorTypeQuery
	case errors.Is(err, librarystore.ErrWritingFailed):
		return errorTypeWrite
	case errors.Is(err, librarystore.ErrTransactionFailed):
		return errorTypeTx
	}

	return errorTypeOther
}
