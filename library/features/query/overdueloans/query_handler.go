package overdueloans

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	OverdueLoans(ctx context.Context, asOf librarystore.DateString) ([]librarystore.OverdueLoan, error)
}

// QueryHandler builds the overdue report.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns every unreturned loan due before the query date with its overdue and suspension days.
func (h QueryHandler) Handle(ctx context.Context, query Query) (OverdueLoans, error) {
	loans, err := h.store.OverdueLoans(ctx, query.AsOf)
	if err != nil {
		return OverdueLoans{}, err
	}

	return OverdueLoans{AsOf: query.AsOf, Loans: loans}, nil
}
