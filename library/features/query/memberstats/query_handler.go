package memberstats

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	MemberStats(ctx context.Context, asOf librarystore.DateString) (librarystore.MemberStats, error)
}

// QueryHandler builds the member statistics.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle counts all members and those with at least one overdue loan.
func (h QueryHandler) Handle(ctx context.Context, query Query) (MemberStats, error) {
	stats, err := h.store.MemberStats(ctx, query.AsOf)
	if err != nil {
		return MemberStats{}, err
	}

	return MemberStats{AsOf: query.AsOf, MemberStats: stats}, nil
}
