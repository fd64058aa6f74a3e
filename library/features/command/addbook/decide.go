package addbook

import (
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	defaultQuantity            = 1
	failureReasonTitleRequired = "title is required"
	failureReasonISBNRequired  = "isbn is required"
	failureReasonDuplicateISBN = "a book with this isbn already exists"
)

// Decide implements the business logic to determine whether a book may be added.
//
// Business Rules:
//
//	WHEN: AddBook command is received
//	THEN: BookAdded event is generated, a quantity below 1 becomes 1
//	ERROR: "title is required" / "isbn is required"
//
// ISBN uniqueness is enforced by the store.
func Decide(command Command) core.DecisionResult {
	book := command.Book

	if book.Title == "" {
		return reject(command, failureReasonTitleRequired, librarystore.ErrMissingRequiredField)
	}

	if book.ISBN == "" {
		return reject(command, failureReasonISBNRequired, librarystore.ErrMissingRequiredField)
	}

	if book.Quantity < 1 {
		book.Quantity = defaultQuantity
	}

	return core.SuccessDecision(core.BuildBookAdded(book, command.OccurredAt))
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildRequestRejected(core.AddingBookFailedEventType, 0, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
