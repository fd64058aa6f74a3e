package updatemember

import (
	"strings"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonMemberNotFound = "member not found"
	failureReasonNoFields       = "no fields to update"
	failureReasonNameRequired   = "name must not be empty"
)

// State is the current contact data of the member, loaded from the store.
type State struct {
	MemberExists bool
	Member       librarystore.Member
}

// Decide implements the business logic of a partial member update.
// The registration date is never changed.
//
//	ERROR: "member not found", "no fields to update", "name must not be empty"
//	IDEMPOTENCY: If every patched field already has the requested value, no event is generated
func Decide(s State, command Command) core.DecisionResult {
	if !s.MemberExists {
		return reject(command, failureReasonMemberNotFound, librarystore.ErrMemberNotFound)
	}

	patch := command.Patch
	if patch.IsEmpty() {
		return reject(command, failureReasonNoFields, librarystore.ErrNoFieldsToUpdate)
	}

	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return reject(command, failureReasonNameRequired, librarystore.ErrMissingRequiredField)
	}

	var changes librarystore.MemberPatch
	changes.Name = changed(s.Member.Name, patch.Name)
	changes.Phone = changed(s.Member.Phone, patch.Phone)
	changes.Address = changed(s.Member.Address, patch.Address)

	if changes.IsEmpty() {
		return core.IdempotentDecision()
	}

	return core.SuccessDecision(core.BuildMemberUpdated(command.MemberID, changes, command.OccurredAt))
}

func changed(current string, requested *string) *string {
	if requested == nil || *requested == current {
		return nil
	}

	return requested
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildRequestRejected(core.UpdatingMemberFailedEventType, command.MemberID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
