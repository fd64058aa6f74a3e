package lendbook

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	commandType = "LendBook"
)

// Command represents the intent to lend a book to a member.
// A LoanPeriodDays of zero or less means the configured default loan period.
type Command struct {
	BookID         librarystore.BookID
	MemberID       librarystore.MemberID
	LoanPeriodDays int
	LoanDate       librarystore.DateString
	OccurredAt     core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. The loan date is the calendar day of occurredAt.
func BuildCommand(
	bookID librarystore.BookID,
	memberID librarystore.MemberID,
	loanPeriodDays int,
	occurredAt time.Time,
) Command {

	return Command{
		BookID:         bookID,
		MemberID:       memberID,
		LoanPeriodDays: loanPeriodDays,
		LoanDate:       librarystore.FormatDate(occurredAt),
		OccurredAt:     core.ToOccurredAt(occurredAt),
	}
}
