package core

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// MemberRegisteredEventType is the event type identifier.
const MemberRegisteredEventType = "MemberRegistered"

// MemberRegistered represents when a person was registered as a library member.
type MemberRegistered struct {
	EventType  EventTypeString
	Member     librarystore.NewMember
	OccurredAt OccurredAtTS
}

// BuildMemberRegistered creates a new MemberRegistered event.
func BuildMemberRegistered(member librarystore.NewMember, occurredAt time.Time) MemberRegistered {
	return MemberRegistered{
		EventType:  MemberRegisteredEventType,
		Member:     member,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberRegistered) IsEventType() string {
	return MemberRegisteredEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberRegistered) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e MemberRegistered) IsErrorEvent() bool {
	return false
}
