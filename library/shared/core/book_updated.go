package core

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// BookUpdatedEventType is the event type identifier.
const BookUpdatedEventType = "BookUpdated"

// BookUpdated represents when catalog data of a book was changed.
// Patch only carries the fields that actually changed.
type BookUpdated struct {
	EventType  EventTypeString
	BookID     BookID
	Patch      librarystore.BookPatch
	OccurredAt OccurredAtTS
}

// BuildBookUpdated creates a new BookUpdated event.
func BuildBookUpdated(bookID BookID, patch librarystore.BookPatch, occurredAt time.Time) BookUpdated {
	return BookUpdated{
		EventType:  BookUpdatedEventType,
		BookID:     bookID,
		Patch:      patch,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e BookUpdated) IsEventType() string {
	return BookUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e BookUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e BookUpdated) IsErrorEvent() bool {
	return false
}
