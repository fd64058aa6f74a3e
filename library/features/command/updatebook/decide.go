package updatebook

import (
	"strings"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonBookNotFound  = "book not found"
	failureReasonNoFields      = "no fields to update"
	failureReasonTitleRequired = "title must not be empty"
)

// State is the current catalog data of the book, loaded from the store.
type State struct {
	BookExists bool
	Book       librarystore.Book
}

// Decide implements the business logic of a partial book update.
//
// Business Rules:
//
//	GIVEN: A book with BookID
//	WHEN: UpdateBook command is received
//	THEN: BookUpdated event carrying only the fields that change is generated
//	ERROR: "book not found" if the book does not exist
//	ERROR: "no fields to update" if the patch is empty
//	ERROR: "title must not be empty" if the patch blanks the title
//	IDEMPOTENCY: If every patched field already has the requested value, no event is generated
func Decide(s State, command Command) core.DecisionResult {
	if !s.BookExists {
		return reject(command, failureReasonBookNotFound, librarystore.ErrBookNotFound)
	}

	patch := command.Patch
	if patch.IsEmpty() {
		return reject(command, failureReasonNoFields, librarystore.ErrNoFieldsToUpdate)
	}

	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return reject(command, failureReasonTitleRequired, librarystore.ErrMissingRequiredField)
	}

	changes := changedFields(s.Book, patch)
	if changes.IsEmpty() {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildBookUpdated(command.BookID, changes, command.OccurredAt))
}

func changedFields(book librarystore.Book, patch librarystore.BookPatch) librarystore.BookPatch {
	var changes librarystore.BookPatch

	changes.Title = changedString(book.Title, patch.Title)
	changes.Author = changedString(book.Author, patch.Author)
	changes.Publisher = changedString(book.Publisher, patch.Publisher)
	changes.Genre = changedString(book.Genre, patch.Genre)

	if patch.PublicationYear != nil && *patch.PublicationYear > 0 && *patch.PublicationYear != book.PublicationYear {
		changes.PublicationYear = patch.PublicationYear
	}

	return changes
}

func changedString(current string, requested *string) *string {
	if requested == nil || *requested == current {
		return nil
	}

	return requested
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildRequestRejected(core.UpdatingBookFailedEventType, command.BookID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
