package core_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
)

func Test_DecisionResult_Idempotent(t *testing.T) {
	result := core.IdempotentDecision()

	assert.True(t, result.IsIdempotent())
	assert.False(t, result.HasEventToApply())
	assert.NoError(t, result.HasError())
	assert.Nil(t, result.Event)
}

func Test_DecisionResult_Success(t *testing.T) {
	event := core.BuildBookDeleted(7, time.Now())

	result := core.SuccessDecision(event)

	assert.False(t, result.IsIdempotent())
	assert.True(t, result.HasEventToApply())
	assert.NoError(t, result.HasError())
	assert.Equal(t, event, result.Event)
	assert.False(t, result.Event.IsErrorEvent())
}

func Test_DecisionResult_Error(t *testing.T) {
	event := core.BuildReturningBookFailed(3, "loan is already returned", time.Now())
	err := errors.New("rejected")

	result := core.ErrorDecision(event, err)

	assert.True(t, result.HasEventToApply())
	assert.Equal(t, err, result.HasError())
	assert.True(t, result.Event.IsErrorEvent())
	assert.Equal(t, core.ReturningBookFailedEventType, result.Event.IsEventType())
}

func Test_RequestRejected_CarriesDynamicTypeAndEntityID(t *testing.T) {
	occurredAt := time.Date(2025, 1, 10, 12, 30, 0, 123456789, time.FixedZone("CET", 3600))

	event := core.BuildRequestRejected(core.DeletingBookFailedEventType, 42, "book has loans", occurredAt)
	withoutID := core.BuildRequestRejected(core.AddingBookFailedEventType, 0, "title is required", occurredAt)

	assert.Equal(t, core.DeletingBookFailedEventType, event.IsEventType())
	assert.Equal(t, "42", event.EntityID)
	assert.Empty(t, withoutID.EntityID)
	assert.Equal(t, time.UTC, event.HasOccurredAt().Location())
	assert.Equal(t, 123456000, event.HasOccurredAt().Nanosecond())
}

func Test_BookReturned_IsLate(t *testing.T) {
	late := core.BuildBookReturned(1, 2, 3, "2025-01-15", 5, 10, time.Now())
	onTime := core.BuildBookReturned(1, 2, 3, "2025-01-09", 0, 0, time.Now())

	assert.True(t, late.IsLate())
	assert.False(t, onTime.IsLate())
}

func Test_RejectionError_MatchesMarkerAndReason(t *testing.T) {
	reason := errors.New("book is not available")
	event := core.BuildLendingBookFailed(1, 2, reason.Error(), time.Now())

	err := core.RejectionError(event, reason)

	assert.ErrorIs(t, err, core.ErrBusinessRuleViolated)
	assert.ErrorIs(t, err, reason)
	assert.Contains(t, err.Error(), core.LendingBookFailedEventType)
}
