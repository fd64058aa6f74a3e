package inventory

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	Inventory(ctx context.Context) ([]librarystore.Book, error)
}

// QueryHandler builds the inventory report.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle returns every book and the copy totals.
func (h QueryHandler) Handle(ctx context.Context, _ Query) (Inventory, error) {
	books, err := h.store.Inventory(ctx)
	if err != nil {
		return Inventory{}, err
	}

	return Summarize(books), nil
}

// Summarize sums up the copies of the books.
func Summarize(books []librarystore.Book) Inventory {
	result := Inventory{Books: books}

	for _, book := range books {
		result.TotalCopies += book.Quantity
		result.AvailableCopies += book.Available
	}

	result.LentCopies = result.TotalCopies - result.AvailableCopies

	return result
}
