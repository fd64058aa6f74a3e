package sqlengine

import (
	"context"
	"database/sql"
	"errors"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationLendBook            = "lend_book"
	operationReturnLoan          = "return_loan"
	operationLoanByID            = "loan_by_id"
	operationActiveLoansByMember = "active_loans_by_member"
	operationActiveLoansByBook   = "active_loans_by_book"
	operationLoanHistoryByMember = "loan_history_by_member"
	operationLoanHistoryByBook   = "loan_history_by_book"
	operationActiveLoans         = "active_loans"
	operationOverdueLoans        = "overdue_loans"
)

// LendBook creates a loan and takes one copy of the book out of stock in a single transaction.
// ErrBookNotAvailable is returned, and nothing is written, when no copy is available.
func (s Store) LendBook(ctx context.Context, loan librarystore.NewLoan) (librarystore.LoanID, error) {
	var id librarystore.LoanID

	err := s.observed(ctx, operationLendBook, func(ctx context.Context) (int, error) {
		if !librarystore.IsValidDate(loan.LoanDate) || !librarystore.IsValidDate(loan.DueDate) {
			return 0, librarystore.ErrInvalidDate
		}

		txErr := s.inTransaction(ctx, func(tx adapters.DBQuerier) error {
			if _, err := s.adjustAvailability(ctx, tx, loan.BookID, -1); err != nil {
				if errors.Is(err, librarystore.ErrAvailabilityOutOfRange) {
					return librarystore.ErrBookNotAvailable
				}

				return err
			}

			var err error
			id, err = s.insertReturningID(ctx, tx, operationLendBook, tableLoans, colLoanID, goqu.Record{
				colBookID:     loan.BookID,
				colMemberID:   loan.MemberID,
				colLoanDate:   loan.LoanDate,
				colDueDate:    loan.DueDate,
				colIsReturned: flagFalse,
			})

			return err
		})
		if txErr != nil {
			return 0, txErr
		}

		return 2, nil
	})

	return id, err
}

// ReturnLoan flags the loan returned, records the return, and puts the copy back in stock in a single transaction.
// The overdue days snapshot is max(0, return date - due date) of the stored loan.
// An unknown loan returns ErrLoanNotFound, a loan returned before ErrLoanAlreadyReturned,
// a return date before the loan date ErrReturnBeforeLoanDate.
func (s Store) ReturnLoan(ctx context.Context, ret librarystore.NewReturn) (int64, error) {
	var returnID int64

	err := s.observed(ctx, operationReturnLoan, func(ctx context.Context) (int, error) {
		if !librarystore.IsValidDate(ret.ReturnDate) {
			return 0, librarystore.ErrInvalidDate
		}

		txErr := s.inTransaction(ctx, func(tx adapters.DBQuerier) error {
			loan, err := s.selectLoan(ctx, tx, ret.LoanID)
			if err != nil {
				return err
			}

			if loan.IsReturned {
				return librarystore.ErrLoanAlreadyReturned
			}

			daysSinceLoan, err := librarystore.DaysBetween(loan.LoanDate, ret.ReturnDate)
			if err != nil {
				return err
			}
			if daysSinceLoan < 0 {
				return librarystore.ErrReturnBeforeLoanDate
			}

			overdueDays, err := librarystore.OverdueDays(loan.DueDate, ret.ReturnDate)
			if err != nil {
				return err
			}

			update := s.builder().Update(tableLoans).
				Set(goqu.Record{colIsReturned: flagTrue}).
				Where(goqu.C(colLoanID).Eq(ret.LoanID), goqu.C(colIsReturned).Eq(flagFalse)).
				Prepared(true)

			_, rowsAffected, err := s.exec(ctx, tx, operationReturnLoan, update)
			if err != nil {
				return err
			}

			if rowsAffected == 0 {
				return librarystore.ErrLoanAlreadyReturned
			}

			returnID, err = s.insertReturningID(ctx, tx, operationReturnLoan, tableReturns, colReturnID, goqu.Record{
				colLoanID:      ret.LoanID,
				colReturnDate:  ret.ReturnDate,
				colOverdueDays: overdueDays,
			})
			if err != nil {
				return err
			}

			_, err = s.adjustAvailability(ctx, tx, loan.BookID, 1)

			return err
		})
		if txErr != nil {
			return 0, txErr
		}

		return 3, nil
	})

	return returnID, err
}

// LoanByID returns the loan with the given id or ErrLoanNotFound.
func (s Store) LoanByID(ctx context.Context, id librarystore.LoanID) (librarystore.Loan, error) {
	var loan librarystore.Loan

	err := s.observed(ctx, operationLoanByID, func(ctx context.Context) (int, error) {
		var err error
		loan, err = s.selectLoan(ctx, s.db, id)
		if err != nil {
			return 0, err
		}

		return 1, nil
	})

	return loan, err
}

// ActiveLoansByMember returns the member's unreturned loans, newest first.
func (s Store) ActiveLoansByMember(ctx context.Context, id librarystore.MemberID) ([]librarystore.LoanRecord, error) {
	return s.observedLoanRecords(ctx, operationActiveLoansByMember, newestFirst(),
		goqu.I(aliasLoans+"."+colMemberID).Eq(id),
		goqu.I(aliasLoans+"."+colIsReturned).Eq(flagFalse),
	)
}

// ActiveLoansByBook returns the book's unreturned loans, newest first.
func (s Store) ActiveLoansByBook(ctx context.Context, id librarystore.BookID) ([]librarystore.LoanRecord, error) {
	return s.observedLoanRecords(ctx, operationActiveLoansByBook, newestFirst(),
		goqu.I(aliasLoans+"."+colBookID).Eq(id),
		goqu.I(aliasLoans+"."+colIsReturned).Eq(flagFalse),
	)
}

// LoanHistoryByMember returns all loans of the member including returned ones, newest first.
func (s Store) LoanHistoryByMember(ctx context.Context, id librarystore.MemberID) ([]librarystore.LoanRecord, error) {
	return s.observedLoanRecords(ctx, operationLoanHistoryByMember, newestFirst(),
		goqu.I(aliasLoans+"."+colMemberID).Eq(id),
	)
}

// LoanHistoryByBook returns all loans of the book including returned ones, newest first.
func (s Store) LoanHistoryByBook(ctx context.Context, id librarystore.BookID) ([]librarystore.LoanRecord, error) {
	return s.observedLoanRecords(ctx, operationLoanHistoryByBook, newestFirst(),
		goqu.I(aliasLoans+"."+colBookID).Eq(id),
	)
}

// ActiveLoans returns every unreturned loan with book title and member name, earliest due date first.
func (s Store) ActiveLoans(ctx context.Context) ([]librarystore.LoanRecord, error) {
	return s.observedLoanRecords(ctx, operationActiveLoans, earliestDueFirst(),
		goqu.I(aliasLoans+"."+colIsReturned).Eq(flagFalse),
	)
}

// OverdueLoans returns the unreturned loans whose due date is before asOf, most overdue first.
func (s Store) OverdueLoans(ctx context.Context, asOf librarystore.DateString) ([]librarystore.OverdueLoan, error) {
	var overdue []librarystore.OverdueLoan

	err := s.observed(ctx, operationOverdueLoans, func(ctx context.Context) (int, error) {
		if !librarystore.IsValidDate(asOf) {
			return 0, librarystore.ErrInvalidDate
		}

		records, err := s.selectLoanRecords(ctx, operationOverdueLoans, earliestDueFirst(),
			goqu.I(aliasLoans+"."+colIsReturned).Eq(flagFalse),
			goqu.I(aliasLoans+"."+colDueDate).Lt(asOf),
		)
		if err != nil {
			return 0, err
		}

		overdue = make([]librarystore.OverdueLoan, 0, len(records))
		for _, record := range records {
			days, daysErr := librarystore.OverdueDays(record.DueDate, asOf)
			if daysErr != nil {
				return 0, daysErr
			}

			overdue = append(overdue, librarystore.OverdueLoan{
				LoanRecord:     record,
				DaysOverdue:    days,
				SuspensionDays: librarystore.SuspensionDays(days),
			})
		}

		return len(overdue), nil
	})

	return overdue, err
}

// selectLoan reads one loan on db, which may be a transaction.
func (s Store) selectLoan(ctx context.Context, db adapters.DBQuerier, id librarystore.LoanID) (librarystore.Loan, error) {
	selectStmt := s.builder().From(tableLoans).
		Select(goqu.C(colLoanID), goqu.C(colBookID), goqu.C(colMemberID), goqu.C(colLoanDate), goqu.C(colDueDate), goqu.C(colIsReturned)).
		Where(goqu.C(colLoanID).Eq(id)).
		Prepared(true)

	var loans []librarystore.Loan

	err := s.query(ctx, db, operationLoanByID, selectStmt, func(rows adapters.DBRows) error {
		var loan librarystore.Loan
		var isReturned int

		if err := rows.Scan(&loan.ID, &loan.BookID, &loan.MemberID, &loan.LoanDate, &loan.DueDate, &isReturned); err != nil {
			return err
		}

		loan.IsReturned = isReturned == flagTrue
		loans = append(loans, loan)

		return nil
	})
	if err != nil {
		return librarystore.Loan{}, err
	}

	if len(loans) == 0 {
		return librarystore.Loan{}, librarystore.ErrLoanNotFound
	}

	return loans[0], nil
}

func (s Store) observedLoanRecords(
	ctx context.Context,
	operation string,
	order []exp.OrderedExpression,
	conditions ...exp.Expression,
) ([]librarystore.LoanRecord, error) {

	var records []librarystore.LoanRecord

	err := s.observed(ctx, operation, func(ctx context.Context) (int, error) {
		var err error
		records, err = s.selectLoanRecords(ctx, operation, order, conditions...)

		return len(records), err
	})

	return records, err
}

// selectLoanRecords joins loans with their book, member, and optional return.
func (s Store) selectLoanRecords(
	ctx context.Context,
	action string,
	order []exp.OrderedExpression,
	conditions ...exp.Expression,
) ([]librarystore.LoanRecord, error) {

	records := make([]librarystore.LoanRecord, 0)

	selectStmt := s.builder().
		From(goqu.T(tableLoans).As(aliasLoans)).
		Join(goqu.T(tableBooks).As(aliasBooks), goqu.On(goqu.I(aliasLoans+"."+colBookID).Eq(goqu.I(aliasBooks+"."+colBookID)))).
		Join(goqu.T(tableMembers).As(aliasMembers), goqu.On(goqu.I(aliasLoans+"."+colMemberID).Eq(goqu.I(aliasMembers+"."+colMemberID)))).
		LeftJoin(goqu.T(tableReturns).As(aliasReturns), goqu.On(goqu.I(aliasLoans+"."+colLoanID).Eq(goqu.I(aliasReturns+"."+colLoanID)))).
		Select(
			goqu.I(aliasLoans+"."+colLoanID),
			goqu.I(aliasLoans+"."+colBookID),
			goqu.I(aliasLoans+"."+colMemberID),
			goqu.I(aliasLoans+"."+colLoanDate),
			goqu.I(aliasLoans+"."+colDueDate),
			goqu.I(aliasLoans+"."+colIsReturned),
			goqu.I(aliasBooks+"."+colTitle),
			goqu.I(aliasMembers+"."+colName),
			goqu.I(aliasReturns+"."+colReturnDate),
			goqu.I(aliasReturns+"."+colOverdueDays),
		).
		Where(conditions...).
		Order(order...).
		Prepared(true)

	err := s.query(ctx, s.db, action, selectStmt, func(rows adapters.DBRows) error {
		var record librarystore.LoanRecord
		var isReturned int
		var returnDate sql.NullString
		var overdueDays sql.NullInt64

		err := rows.Scan(
			&record.ID, &record.BookID, &record.MemberID, &record.LoanDate, &record.DueDate, &isReturned,
			&record.BookTitle, &record.MemberName, &returnDate, &overdueDays,
		)
		if err != nil {
			return err
		}

		record.IsReturned = isReturned == flagTrue
		record.ReturnDate = returnDate.String
		record.OverdueDays = int(overdueDays.Int64)
		records = append(records, record)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

func newestFirst() []exp.OrderedExpression {
	return []exp.OrderedExpression{
		goqu.I(aliasLoans + "." + colLoanDate).Desc(),
		goqu.I(aliasLoans + "." + colLoanID).Desc(),
	}
}

func earliestDueFirst() []exp.OrderedExpression {
	return []exp.OrderedExpression{
		goqu.I(aliasLoans + "." + colDueDate).Asc(),
		goqu.I(aliasLoans + "." + colLoanID).Asc(),
	}
}
