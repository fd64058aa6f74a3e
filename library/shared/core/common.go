package core

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Instead of implementing full value objects, I'm using some alias types and helper methods here ...

// EventTypeString represents the type identifier of an event.
type EventTypeString = string

// BookID represents a book identifier.
type BookID = librarystore.BookID

// MemberID represents a member identifier.
type MemberID = librarystore.MemberID

// LoanID represents a loan identifier.
type LoanID = librarystore.LoanID

// DateString represents a YYYY-MM-DD calendar date.
type DateString = librarystore.DateString

// OccurredAtTS represents when an event occurred.
type OccurredAtTS = time.Time

// ToOccurredAt converts a time to OccurredAtTS with UTC normalization and microsecond precision.
func ToOccurredAt(t time.Time) OccurredAtTS {
	return t.UTC().Truncate(time.Microsecond)
}
