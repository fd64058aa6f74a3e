package core

import (
	"time"
)

// BookReturnedEventType is the event type identifier.
const BookReturnedEventType = "BookReturned"

// BookReturned represents when a lent copy came back.
// SuspensionDays is the borrowing suspension the member earned by returning late, zero if on time.
type BookReturned struct {
	EventType      EventTypeString
	LoanID         LoanID
	BookID         BookID
	MemberID       MemberID
	ReturnDate     DateString
	OverdueDays    int
	SuspensionDays int
	OccurredAt     OccurredAtTS
}

// BuildBookReturned creates a new BookReturned event.
func BuildBookReturned(
	loanID LoanID,
	bookID BookID,
	memberID MemberID,
	returnDate DateString,
	overdueDays int,
	suspensionDays int,
	occurredAt time.Time,
) BookReturned {

	return BookReturned{
		EventType:      BookReturnedEventType,
		LoanID:         loanID,
		BookID:         bookID,
		MemberID:       memberID,
		ReturnDate:     returnDate,
		OverdueDays:    overdueDays,
		SuspensionDays: suspensionDays,
		OccurredAt:     ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookReturned) IsEventType() string {
	return BookReturnedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookReturned) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookReturned) IsErrorEvent() bool {
	return false
}

// IsLate reports whether the book came back after its due date.
func (e BookReturned) IsLate() bool {
	return e.OverdueDays > 0
}
