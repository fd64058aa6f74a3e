package core

import (
	"time"
)

// BookLentEventType is the event type identifier.
const BookLentEventType = "BookLent"

// BookLent represents when a copy of a book was lent to a member.
type BookLent struct {
	EventType  EventTypeString
	BookID     BookID
	MemberID   MemberID
	LoanDate   DateString
	DueDate    DateString
	OccurredAt OccurredAtTS
}

// BuildBookLent creates a new BookLent event.
func BuildBookLent(
	bookID BookID,
	memberID MemberID,
	loanDate DateString,
	dueDate DateString,
	occurredAt time.Time,
) BookLent {

	return BookLent{
		EventType:  BookLentEventType,
		BookID:     bookID,
		MemberID:   memberID,
		LoanDate:   loanDate,
		DueDate:    dueDate,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookLent) IsEventType() string {
	return BookLentEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookLent) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookLent) IsErrorEvent() bool {
	return false
}
