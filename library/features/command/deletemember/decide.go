package deletemember

import (
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonMemberNotFound = "member not found"
	failureReasonMemberHasLoans = "member has loans"
)

// State is the current state of the member, loaded from the store.
type State struct {
	MemberExists bool
	LoanCount    int
}

// Decide implements the business logic to determine whether a member may be deleted.
// Members with any loan history, returned or not, are kept.
func Decide(s State, command Command) core.DecisionResult {
	if !s.MemberExists {
		return reject(command, failureReasonMemberNotFound, librarystore.ErrMemberNotFound)
	}

	if s.LoanCount > 0 {
		return reject(command, failureReasonMemberHasLoans, librarystore.ErrMemberHasLoans)
	}

	return core.SuccessDecision(core.BuildMemberDeleted(command.MemberID, command.OccurredAt))
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildRequestRejected(core.DeletingMemberFailedEventType, command.MemberID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
