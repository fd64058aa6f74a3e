package core

import (
	"time"
)

// MemberDeletedEventType is the event type identifier.
const MemberDeletedEventType = "MemberDeleted"

// MemberDeleted represents when a member without loan history was removed.
type MemberDeleted struct {
	EventType  EventTypeString
	MemberID   MemberID
	OccurredAt OccurredAtTS
}

// BuildMemberDeleted creates a new MemberDeleted event.
func BuildMemberDeleted(memberID MemberID, occurredAt time.Time) MemberDeleted {
	return MemberDeleted{
		EventType:  MemberDeletedEventType,
		MemberID:   memberID,
		OccurredAt: ToOccurredAt(occurredAt),
	}
}

// IsEventType returns the event type identifier.
func (e MemberDeleted) IsEventType() string {
	return MemberDeletedEventType
}

// HasOccurredAt returns when this event occurred.
func (e MemberDeleted) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns false since this event represents a successful operation.
func (e MemberDeleted) IsErrorEvent() bool {
	return false
}
