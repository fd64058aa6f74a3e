package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

func Test_ClassifyDriverError(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expected    error
	}{
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: books.isbn (2067)"), librarystore.ErrDuplicateISBN},
		{"sqlite foreign key", errors.New("FOREIGN KEY constraint failed"), librarystore.ErrConstraintViolation},
		{"sqlite check", errors.New("CHECK constraint failed: available >= 0"), librarystore.ErrConstraintViolation},
		{"sqlite locked", errors.New("database is locked (5) (SQLITE_BUSY)"), librarystore.ErrDatabaseBusy},
		{"pq unique", &pq.Error{Code: "23505"}, librarystore.ErrDuplicateISBN},
		{"pq foreign key", fmt.Errorf("wrapped: %w", &pq.Error{Code: "23503"}), librarystore.ErrConstraintViolation},
		{"pgx serialization", &pgconn.PgError{Code: "40001"}, librarystore.ErrDatabaseBusy},
		{"pgx lock not available", &pgconn.PgError{Code: "55P03"}, librarystore.ErrDatabaseBusy},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			classified := classifyDriverError(tc.err)

			assert.ErrorIs(t, classified, tc.expected)
			assert.ErrorIs(t, classified, tc.err, "the driver error must stay in the chain")
		})
	}
}

func Test_ClassifyDriverError_UnknownErrorIsUnchanged(t *testing.T) {
	unknown := errors.New("disk I/O error")

	undefinedTable := &pq.Error{Code: "42P01"}

	assert.Equal(t, unknown, classifyDriverError(unknown))
	assert.Equal(t, undefinedTable, classifyDriverError(undefinedTable))
	assert.NoError(t, classifyDriverError(nil))
}

func Test_ErrorTypeOf(t *testing.T) {
	testCases := []struct {
		err      error
		expected string
	}{
		{nil, errorTypeNone},
		{context.Canceled, errorTypeCanceled},
		{fmt.Errorf("query: %w", context.DeadlineExceeded), errorTypeTimeout},
		{librarystore.ErrLoanNotFound, errorTypeNotFound},
		{errors.Join(librarystore.ErrWritingFailed, librarystore.ErrDuplicateISBN), errorTypeDuplicate},
		{errors.Join(librarystore.ErrWritingFailed, librarystore.ErrConstraintViolation), errorTypeConstraint},
		{errors.Join(librarystore.ErrQueryingFailed, librarystore.ErrDatabaseBusy), errorTypeBusy},
		{librarystore.ErrBookNotAvailable, errorTypeBusiness},
		{librarystore.ErrBuildingQueryFailed, errorTypeBuild},
		{librarystore.ErrScanningFailed, errorTypeScan},
		{librarystore.ErrQueryingFailed, errorTypeQuery},
		{librarystore.ErrWritingFailed, errorTypeWrite},
		{librarystore.ErrTransactionFailed, errorTypeTx},
		{errors.New("boom"), errorTypeOther},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, errorTypeOf(tc.err), "%v", tc.err)
	}
}
