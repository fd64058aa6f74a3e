package deletebook

import (
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonBookNotFound = "book not found"
	failureReasonBookHasLoans = "book has loans"
)

// State is the current state of the book, loaded from the store.
type State struct {
	BookExists bool
	LoanCount  int
}

// Decide implements the business logic to determine whether a book may be deleted.
// Loans are never deleted, so a book that was ever lent stays in the catalog.
//
//	ERROR: "book not found" if the book does not exist
//	ERROR: "book has loans" if any loan, active or returned, references the book
func Decide(s State, command Command) core.DecisionResult {
	if !s.BookExists {
		return reject(command, failureReasonBookNotFound, librarystore.ErrBookNotFound)
	}

	if s.LoanCount > 0 {
		return reject(command, failureReasonBookHasLoans, librarystore.ErrBookHasLoans)
	}

	return core.SuccessDecision(core.BuildBookDeleted(command.BookID, command.OccurredAt))
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildRequestRejected(core.DeletingBookFailedEventType, command.BookID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
