package memberstatus

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	MemberByID(ctx context.Context, id librarystore.MemberID) (librarystore.Member, error)
	MemberOverdueDays(ctx context.Context, id librarystore.MemberID, asOf librarystore.DateString) (int, error)
	ActiveLoansByMember(ctx context.Context, id librarystore.MemberID) ([]librarystore.LoanRecord, error)
}

// QueryHandler computes member borrowing status.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle loads the member, the largest overdue of its active loans, and the active loans themselves.
// A member can borrow when no active loan is overdue.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Status, error) {
	member, err := h.store.MemberByID(ctx, query.MemberID)
	if err != nil {
		return Status{}, err
	}

	overdueDays, err := h.store.MemberOverdueDays(ctx, query.MemberID, query.AsOf)
	if err != nil {
		return Status{}, err
	}

	loans, err := h.store.ActiveLoansByMember(ctx, query.MemberID)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Member:         member,
		AsOf:           query.AsOf,
		OverdueDays:    overdueDays,
		SuspensionDays: librarystore.SuspensionDays(overdueDays),
		CanBorrow:      overdueDays == 0,
		ActiveLoans:    loans,
	}, nil
}
