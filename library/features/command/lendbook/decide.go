package lendbook

import (
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	failureReasonMemberNotFound   = "member not found"
	failureReasonMemberSuspended  = "member has overdue loans"
	failureReasonBookNotFound     = "book not found"
	failureReasonBookNotAvailable = "book is not available"
	failureReasonInvalidLoanDate  = "loan date or loan period is invalid"
)

// State is the current state of the member and the book, loaded from the store.
type State struct {
	MemberExists      bool
	MemberOverdueDays int
	BookExists        bool
	BookAvailable     int
}

// Decide implements the business logic to determine whether a book may be lent to a member.
// This is a pure function with no side effects.
//
// Business Rules:
//
//	GIVEN: A book with BookID and a member with MemberID
//	WHEN: LendBook command is received
//	THEN: BookLent event with due date = loan date + loan period is generated
//	ERROR: "member not found" if the member does not exist
//	ERROR: "member has overdue loans" if any unreturned loan of the member is past its due date
//	ERROR: "book not found" if the book does not exist
//	ERROR: "book is not available" if no copy of the book is available
//
// The command must carry a positive loan period; the handler resolves the default.
func Decide(s State, command Command) core.DecisionResult {
	if !s.MemberExists {
		return reject(command, failureReasonMemberNotFound, librarystore.ErrMemberNotFound)
	}

	if s.MemberOverdueDays > 0 {
		return reject(command, failureReasonMemberSuspended, librarystore.ErrMemberHasOverdueLoans)
	}

	if !s.BookExists {
		return reject(command, failureReasonBookNotFound, librarystore.ErrBookNotFound)
	}

	if s.BookAvailable <= 0 {
		return reject(command, failureReasonBookNotAvailable, librarystore.ErrBookNotAvailable)
	}

	dueDate, err := librarystore.AddDays(command.LoanDate, command.LoanPeriodDays)
	if err != nil || command.LoanPeriodDays <= 0 {
		return reject(command, failureReasonInvalidLoanDate, errors.Join(librarystore.ErrInvalidDate, err))
	}

	return core.SuccessDecision(
		core.BuildBookLent(
			command.BookID,
			command.MemberID,
			command.LoanDate,
			dueDate,
			command.OccurredAt,
		),
	)
}

func reject(command Command, reason string, cause error) core.DecisionResult {
	event := core.BuildLendingBookFailed(command.BookID, command.MemberID, reason, command.OccurredAt)

	return core.ErrorDecision(event, core.RejectionError(event, cause))
}
