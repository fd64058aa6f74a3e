package popularbooks

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// DefaultLimit is the size of the ranking when neither query nor handler set one.
const DefaultLimit = 10

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	PopularBooks(ctx context.Context, limit int) ([]librarystore.PopularBook, error)
}

// QueryHandler builds the popular books ranking.
type QueryHandler struct {
	store Store
	limit int
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithDefaultLimit sets the ranking size for queries without a limit.
func WithDefaultLimit(limit int) Option {
	return func(h *QueryHandler) {
		if limit > 0 {
			h.limit = limit
		}
	}
}

// NewQueryHandler creates a new QueryHandler with optional configuration.
func NewQueryHandler(store Store, opts ...Option) QueryHandler {
	handler := QueryHandler{store: store, limit: DefaultLimit}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle returns up to the requested number of books, books that were never lent included.
func (h QueryHandler) Handle(ctx context.Context, query Query) (PopularBooks, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = h.limit
	}

	books, err := h.store.PopularBooks(ctx, limit)
	if err != nil {
		return PopularBooks{}, err
	}

	return PopularBooks{Books: books}, nil
}
