package findloans

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// ErrUnknownCriterion is returned for a Query with an unsupported Criterion.
var ErrUnknownCriterion = errors.New("unknown loan lookup criterion")

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	LoanByID(ctx context.Context, id librarystore.LoanID) (librarystore.Loan, error)
	ActiveLoansByMember(ctx context.Context, id librarystore.MemberID) ([]librarystore.LoanRecord, error)
	ActiveLoansByBook(ctx context.Context, id librarystore.BookID) ([]librarystore.LoanRecord, error)
	LoanHistoryByMember(ctx context.Context, id librarystore.MemberID) ([]librarystore.LoanRecord, error)
	LoanHistoryByBook(ctx context.Context, id librarystore.BookID) ([]librarystore.LoanRecord, error)
}

// QueryHandler runs loan lookups against the store.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the lookup selected by the query.
// A lookup by id returns the bare loan without book title and member name.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Loans, error) {
	var loans []librarystore.LoanRecord
	var err error

	switch query.By {
	case ByID:
		var loan librarystore.Loan
		loan, err = h.store.LoanByID(ctx, query.ID)
		if err == nil {
			loans = []librarystore.LoanRecord{{Loan: loan}}
		}
	case ActiveByMember:
		loans, err = h.store.ActiveLoansByMember(ctx, query.ID)
	case ActiveByBook:
		loans, err = h.store.ActiveLoansByBook(ctx, query.ID)
	case HistoryByMember:
		loans, err = h.store.LoanHistoryByMember(ctx, query.ID)
	case HistoryByBook:
		loans, err = h.store.LoanHistoryByBook(ctx, query.ID)
	default:
		return Loans{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, query.By)
	}

	if err != nil {
		return Loans{}, err
	}

	return Loans{Loans: loans}, nil
}
