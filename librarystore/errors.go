package librarystore

import (
	"errors"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

var (
	// ErrBookNotFound is returned when no book exists for the given id.
	ErrBookNotFound = errors.New("book not found")

	// ErrMemberNotFound is returned when no member exists for the given id.
	ErrMemberNotFound = errors.New("member not found")

	// ErrLoanNotFound is returned when no loan exists for the given id.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrDuplicateISBN is returned when a book with the same ISBN already exists.
	ErrDuplicateISBN = errors.New("a book with this isbn already exists")

	// ErrConstraintViolation is returned when the database rejects a write because of a foreign key or check constraint.
	ErrConstraintViolation = errors.New("database constraint violated")

	// ErrNoFieldsToUpdate is returned when a partial update carries no fields.
	ErrNoFieldsToUpdate = errors.New("no fields to update")

	// ErrBookNotAvailable is returned when a loan is requested for a book without available copies.
	ErrBookNotAvailable = errors.New("book is not available")

	// ErrAvailabilityOutOfRange is returned when an availability change would break 0 <= available <= quantity.
	ErrAvailabilityOutOfRange = errors.New("availability must stay between zero and quantity")

	// ErrLoanAlreadyReturned is returned when a loan is returned a second time.
	ErrLoanAlreadyReturned = errors.New("loan is already returned")

	// ErrMemberHasLoans is returned when a member with loan history is deleted.
	ErrMemberHasLoans = errors.New("member has loans and cannot be deleted")

	// ErrBookHasLoans is returned when a book referenced by loans is deleted.
	ErrBookHasLoans = errors.New("book has loans and cannot be deleted")

	// ErrMemberHasOverdueLoans is returned when a member with overdue loans tries to borrow.
	ErrMemberHasOverdueLoans = errors.New("member has overdue loans")

	// ErrReturnBeforeLoanDate is returned when a return date lies before the loan date.
	ErrReturnBeforeLoanDate = errors.New("return date is before the loan date")

	// ErrInvalidDate is returned for strings that are not a YYYY-MM-DD calendar date in the supported range.
	ErrInvalidDate = errors.New("invalid date")

	// ErrDatabaseBusy is returned when the database is locked by another connection. It is retryable.
	ErrDatabaseBusy = errors.New("database is busy")
)

var (
	ErrQueryingFailed       = errors.New("querying the library store failed")
	ErrScanningFailed       = errors.New("scanning a database row failed")
	ErrWritingFailed        = errors.New("writing to the library store failed")
	ErrBuildingQueryFailed  = errors.New("building the sql statement failed")
	ErrTransactionFailed    = errors.New("library store transaction failed")
	ErrCreatingSchemaFailed = errors.New("creating the library schema failed")
	ErrMissingRequiredField = errors.New("required field is missing")
)
