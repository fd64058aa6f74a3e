package returnbook

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	commandType = "ReturnBook"
)

// Command represents the intent to return a lent book.
type Command struct {
	LoanID     librarystore.LoanID
	ReturnDate librarystore.DateString
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(loanID librarystore.LoanID, returnDate librarystore.DateString, occurredAt time.Time) Command {
	return Command{
		LoanID:     loanID,
		ReturnDate: returnDate,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}

// BuildCommandReturnedToday creates a new Command with the calendar day of occurredAt as return date.
func BuildCommandReturnedToday(loanID librarystore.LoanID, occurredAt time.Time) Command {
	return BuildCommand(loanID, librarystore.FormatDate(occurredAt), occurredAt)
}
