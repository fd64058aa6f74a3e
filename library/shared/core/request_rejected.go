package core

import (
	"fmt"
	"time"
)

// Event types of catalog and registry requests rejected by a business rule.
const (
	AddingBookFailedEventType        = "AddingBookFailed"
	UpdatingBookFailedEventType      = "UpdatingBookFailed"
	DeletingBookFailedEventType      = "DeletingBookFailed"
	RegisteringMemberFailedEventType = "RegisteringMemberFailed"
	UpdatingMemberFailedEventType    = "UpdatingMemberFailed"
	DeletingMemberFailedEventType    = "DeletingMemberFailed"
)

// RequestRejected represents a rejected catalog or registry request.
// The concrete event type is dynamic, e.g. DeletingBookFailed.
type RequestRejected struct {
	EventType   EventTypeString
	EntityID    string
	FailureInfo string
	OccurredAt  OccurredAtTS
}

// BuildRequestRejected creates a new RequestRejected event with the given event type.
// entityID is zero for requests that target an entity which does not exist yet.
func BuildRequestRejected(eventType string, entityID int64, failureInfo string, occurredAt time.Time) RequestRejected {
	event := RequestRejected{
		EventType:   eventType,
		FailureInfo: failureInfo,
		OccurredAt:  ToOccurredAt(occurredAt),
	}

	if entityID != 0 {
		event.EntityID = fmt.Sprintf("%d", entityID)
	}

	return event
}

// IsEventType returns the dynamic event type identifier.
func (e RequestRejected) IsEventType() string {
	return e.EventType
}

// HasOccurredAt returns when this event occurred.
func (e RequestRejected) HasOccurredAt() time.Time {
	return e.OccurredAt
}

// IsErrorEvent returns true since this event represents a failed operation.
func (e RequestRejected) IsErrorEvent() bool {
	return true
}
