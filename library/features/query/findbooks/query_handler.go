package findbooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// ErrUnknownCriterion is returned for a Query with an unsupported Criterion.
var ErrUnknownCriterion = errors.New("unknown book lookup criterion")

// Store defines the interface needed by the QueryHandler for library store operations.
type Store interface {
	BookByID(ctx context.Context, id librarystore.BookID) (librarystore.Book, error)
	SearchBooks(ctx context.Context, keyword string) ([]librarystore.Book, error)
	BooksByGenre(ctx context.Context, genre string) ([]librarystore.Book, error)
	BooksByAuthor(ctx context.Context, author string) ([]librarystore.Book, error)
	AllBooks(ctx context.Context) ([]librarystore.Book, error)
}

// QueryHandler runs book lookups against the store.
type QueryHandler struct {
	store Store
}

// NewQueryHandler creates a new QueryHandler.
func NewQueryHandler(store Store) QueryHandler {
	return QueryHandler{store: store}
}

// Handle executes the lookup selected by the query.
// A lookup by id of an unknown book returns librarystore.ErrBookNotFound,
// a text lookup with blank text librarystore.ErrMissingRequiredField.
func (h QueryHandler) Handle(ctx context.Context, query Query) (Books, error) {
	var books []librarystore.Book
	var err error

	switch query.By {
	case ByID:
		var book librarystore.Book
		book, err = h.store.BookByID(ctx, query.BookID)
		if err == nil {
			books = []librarystore.Book{book}
		}

	case ByKeyword, ByGenre, ByAuthor:
		if query.Text == "" {
			return Books{}, fmt.Errorf("find books by %s: %w", query.By, librarystore.ErrMissingRequiredField)
		}

		books, err = h.byText(ctx, query)

	case All:
		books, err = h.store.AllBooks(ctx)

	default:
		return Books{}, fmt.Errorf("%w: %q", ErrUnknownCriterion, query.By)
	}

	if err != nil {
		return Books{}, err
	}

	return Books{Books: books}, nil
}

func (h QueryHandler) byText(ctx context.Context, query Query) ([]librarystore.Book, error) {
	switch query.By {
	case ByGenre:
		return h.store.BooksByGenre(ctx, query.Text)
	case ByAuthor:
		return h.store.BooksByAuthor(ctx, query.Text)
	default:
		return h.store.SearchBooks(ctx, query.Text)
	}
}
