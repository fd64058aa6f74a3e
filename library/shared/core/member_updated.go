package core

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// MemberUpdatedEventType is the event type identifier.
const MemberUpdatedEventType = "MemberUpdated"

// MemberUpdated represents when contact data of a member was changed.
type MemberUpdated struct {
	EventType  EventTypeString
	MemberID   MemberID
	Patch      librarystore.MemberPatch
	OccurredAt OccurredAtTS
}

// BuildMemberUpdated creates a new MemberUpdated event.
func BuildMemberUpdated(memberID MemberID, patch librarystore.MemberPatch, occurredAt time.Time) MemberUpdated {
	return MemberUpdated{
		EventType:  MemberUpdatedEventType,
		MemberID:   memberID,
		Patch:      patch,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberUpdated) IsEventType() string {
	return MemberUpdatedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberUpdated) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e MemberUpdated) IsErrorEvent() bool {
	return false
}
