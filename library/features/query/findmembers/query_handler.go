package findmembers

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// DefaultSearchLimit caps name searches without an explicit limit.
const DefaultSearchLimit = 50

// ErrUnknownCriterion is returned for a Query with an unsupported Criterion.
var ErrUnknownCriterion = errors.New("unknown member lookup criterion")

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	MemberByID(ctx context.Context, id librarystore.MemberID) (librarystore.Member, error)
	SearchMembersByName(ctx context.Context, name string, limit int) ([]librarystore.Member, error)
	AllMembers(ctx context.Context) ([]librarystore.Member, error)
	CountMembers(ctx context.Context) (int, error)
}

// QueryHandler runs member lookups against the store.
type QueryHandler struct {
	store       Store
	searchLimit int
}

// Option configures a QueryHandler.
type Option func(*QueryHandler)

// WithSearchLimit sets the limit used by name searches that carry none.
func WithSearchLimit(limit int) Option {
	return func(h *QueryHandler) {
		if limit > 0 {
			h.searchLimit = limit
		}
	}
}

// NewQueryHandler creates a new QueryHandler with optional configuration.
func NewQueryHandler(store Store, opts ...Option) QueryHandler {
	handler := QueryHandler{store: store, searchLimit: DefaultSearchLimit}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the lookup selected by the query.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Members, error) {
	switch query.By {
	case ByID:
		member, err := h.store.MemberByID(ctx, query.MemberID)
		if err != nil {
			return Members{}, err
		}

		return Members{Members: []librarystore.Member{member}, Total: 1}, nil

	case ByName:
		if query.Name == "" {
			return Members{}, fmt.Errorf("find members by name: %w", librarystore.ErrMissingRequiredField)
		}

		limit := query.Limit
		if limit <= 0 {
			limit = h.searchLimit
		}

		members, err := h.store.SearchMembersByName(ctx, query.Name, limit)
		if err != nil {
			return Members{}, err
		}

		return Members{Members: members, Total: len(members)}, nil

	case All:
		members, err := h.store.AllMembers(ctx)
		if err != nil {
			return Members{}, err
		}

		return Members{Members: members, Total: len(members)}, nil

	case Count:
		total, err := h.store.CountMembers(ctx)
		if err != nil {
			return Members{}, err
		}

		return Members{Total: total}, nil

	default:
		return Members{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, query.By)
	}
}
