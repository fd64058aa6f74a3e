package returnbook

import (
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonLoanNotFound        = "loan not found"
	failureReasonLoanAlreadyReturned = "loan is already returned"
	failureReasonInvalidReturnDate   = "return date is invalid"
	failureReasonReturnBeforeLoan    = "return date is before the loan date"
)

// State is the current state of the loan, loaded from the store.
type State struct {
	LoanExists bool
	Loan       librarystore.Loan
}

// Decide implements the business logic to determine whether a loan may be returned.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A loan with LoanID
//	WHEN: ReturnBook command is received
//	THEN: BookReturned event with overdue days = max(0, return date - due date)
//	      and suspension days = overdue days x 2 is generated
//	ERROR: "loan not found" if the loan does not exist
//	ERROR: "loan is already returned" if the loan was returned before
//	ERROR: "return date is invalid" if the return date is not a calendar date
//	ERROR: "return date is before the loan date" if the book would come back before it left
func Decide(s State, command Command) core.DecisionResult {
	if !s.LoanExists {
		return reject(command, failureReasonLoanNotFound, librarystore.ErrLoanNotFound)
	}

	if s.Loan.IsReturned {
		return reject(command, failureReasonLoanAlreadyReturned, librarystore.ErrLoanAlreadyReturned)
	}

	daysSinceLoan, err := librarystore.DaysBetween(s.Loan.LoanDate, command.ReturnDate)
	if err != nil {
		return reject(command, failureReasonInvalidReturnDate, err)
	}

	if daysSinceLoan < 0 {
		return reject(command, failureReasonReturnBeforeLoan, librarystore.ErrReturnBeforeLoanDate)
	}

	overdueDays, err := librarystore.OverdueDays(s.Loan.DueDate, command.ReturnDate)
	if err != nil {
		return reject(command, failureReasonInvalidReturnDate, err)
	}

	return core.SuccessDecision(
		core.BuildBookReturned(
			s.Loan.ID,
			s.Loan.BookID,
			s.Loan.MemberID,
			command.ReturnDate,
			overdueDays,
			librarystore.SuspensionDays(overdueDays),
			command.OccurredAt,
		),
	)
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildReturningBookFailed(command.LoanID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
