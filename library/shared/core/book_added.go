package core

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// BookAddedEventType is the event type identifier.
const BookAddedEventType = "BookAdded"

// BookAdded represents when a book was added to the catalog.
type BookAdded struct {
	EventType  EventTypeString
	Book       librarystore.NewBook
	OccurredAt OccurredAtTS
}

// BuildBookAdded creates a new BookAdded event.
func BuildBookAdded(book librarystore.NewBook, occurredAt time.Time) BookAdded {
	return BookAdded{
		EventType:  BookAddedEventType,
		Book:       book,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookAdded) IsEventType() string {
	return BookAddedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookAdded) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookAdded) IsErrorEvent() bool {
	return false
}
