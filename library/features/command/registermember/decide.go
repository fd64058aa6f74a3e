package registermember

import (
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonNameRequired            = "name is required"
	failureReasonInvalidRegistrationDate = "registration date must be a YYYY-MM-DD date"
)

// Decide implements the business logic to determine whether a member may be registered.
//
//	ERROR: "name is required" if the name is blank
//	ERROR: "registration date must be a YYYY-MM-DD date" for any other date format
func Decide(command Command) core.DecisionResult {
	member := command.Member

	if member.Name == "" {
		return reject(command, failureReasonNameRequired, librarystore.ErrMissingRequiredField)
	}

	if !librarystore.IsValidDate(member.RegistrationDate) {
		return reject(command, failureReasonInvalidRegistrationDate, librarystore.ErrInvalidDate)
	}

	return core.SuccessDecision(core.BuildMemberRegistered(member, command.OccurredAt))
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildRequestRejected(core.RegisteringMemberFailedEventType, 0, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
