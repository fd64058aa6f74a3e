package activeloans

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	ActiveLoans(ctx context.Context) ([]librarystore.LoanRecord, error)
}

// QueryHandler lists the active loans.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns all unreturned loans with book title and member name.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (ActiveLoans, error) {
	loans, err := h.store.ActiveLoans(ctx)
	if err != nil {
		return ActiveLoans{}, err
	}

	return ActiveLoans{Loans: loans}, nil
}
