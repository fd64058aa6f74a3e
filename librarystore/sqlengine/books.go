package sqlengine

import (
	"context"
	"errors"
	"strings"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine/internal/adapters"
)

const (
	operationAddBook            = "add_book"
	operationBookByID           = "book_by_id"
	operationSearchBooks        = "search_books"
	operationBooksByGenre       = "books_by_genre"
	operationBooksByAuthor      = "books_by_author"
	operationAllBooks           = "all_books"
	operationUpdateBook         = "update_book"
	operationDeleteBook         = "delete_book"
	operationAdjustAvailability = "adjust_availability"

	defaultBookQuantity = 1
)

// bookColumns lists the columns scanned by scanBook, in order.
func bookColumns() []any {
	return []any{
		goqu.C(colBookID), goqu.C(colTitle), goqu.C(colAuthor), goqu.C(colPublisher), goqu.C(colPublicationYear),
		goqu.C(colISBN), goqu.C(colGenre), goqu.C(colQuantity), goqu.C(colAvailable),
	}
}

func scanBook(rows adapters.DBRows) (librarystore.Book, error) {
	var b librarystore.Book

	err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.PublicationYear, &b.ISBN, &b.Genre, &b.Quantity, &b.Available)

	return b, err
}

// AddBook stores a new book with all copies available and returns its id.
// Title and ISBN are required; a quantity below 1 defaults to 1.
func (s Store) AddBook(ctx context.Context, book librarystore.NewBook) (librarystore.BookID, error) {
	var id librarystore.BookID

	err := s.observed(ctx, operationAddBook, func(ctx context.Context) (int, error) {
		title, isbn := strings.TrimSpace(book.Title), strings.TrimSpace(book.ISBN)
		if title == "" || isbn == "" {
			return 0, errors.Join(librarystore.ErrMissingRequiredField, errors.New("title and isbn are required"))
		}

		quantity := book.Quantity
		if quantity < 1 {
			quantity = defaultBookQuantity
		}

		var err error
		id, err = s.insertReturningID(ctx, s.db, operationAddBook, tableBooks, colBookID, goqu.Record{
			colTitle:           title,
			colAuthor:          book.Author,
			colPublisher:       book.Publisher,
			colPublicationYear: book.PublicationYear,
			colISBN:            isbn,
			colGenre:           book.Genre,
			colQuantity:        quantity,
			colAvailable:       quantity,
		})
		if err != nil {
			return 0, err
		}

		return 1, nil
	})

	return id, err
}

// BookByID returns the book with the given id or ErrBookNotFound.
func (s Store) BookByID(ctx context.Context, id librarystore.BookID) (librarystore.Book, error) {
	var book librarystore.Book

	err := s.observed(ctx, operationBookByID, func(ctx context.Context) (int, error) {
		books, err := s.selectBooks(ctx, s.db, operationBookByID, goqu.C(colBookID).Eq(id))
		if err != nil {
			return 0, err
		}

		if len(books) == 0 {
			return 0, librarystore.ErrBookNotFound
		}

		book = books[0]

		return 1, nil
	})

	return book, err
}

// SearchBooks returns the books whose title, author, or ISBN contains the keyword, ignoring case.
func (s Store) SearchBooks(ctx context.Context, keyword string) ([]librarystore.Book, error) {
	pattern := containsPattern(keyword)

	return s.observedBooks(ctx, operationSearchBooks, goqu.Or(
		goqu.C(colTitle).ILike(pattern),
		goqu.C(colAuthor).ILike(pattern),
		goqu.C(colISBN).ILike(pattern),
	))
}

// BooksByGenre returns the books whose genre contains the given text, ignoring case.
func (s Store) BooksByGenre(ctx context.Context, genre string) ([]librarystore.Book, error) {
	return s.observedBooks(ctx, operationBooksByGenre, goqu.C(colGenre).ILike(containsPattern(genre)))
}

// BooksByAuthor returns the books whose author contains the given text, ignoring case.
func (s Store) BooksByAuthor(ctx context.Context, author string) ([]librarystore.Book, error) {
	return s.observedBooks(ctx, operationBooksByAuthor, goqu.C(colAuthor).ILike(containsPattern(author)))
}

// AllBooks returns every book ordered by id.
func (s Store) AllBooks(ctx context.Context) ([]librarystore.Book, error) {
	return s.observedBooks(ctx, operationAllBooks)
}

// UpdateBook applies a partial update.
// An empty patch returns ErrNoFieldsToUpdate, an unknown id ErrBookNotFound.
func (s Store) UpdateBook(ctx context.Context, id librarystore.BookID, patch librarystore.BookPatch) error {
	return s.observed(ctx, operationUpdateBook, func(ctx context.Context) (int, error) {
		if patch.IsEmpty() {
			return 0, librarystore.ErrNoFieldsToUpdate
		}

		record := goqu.Record{}
		if patch.Title != nil {
			record[colTitle] = *patch.Title
		}
		if patch.Author != nil {
			record[colAuthor] = *patch.Author
		}
		if patch.Publisher != nil {
			record[colPublisher] = *patch.Publisher
		}
		if patch.PublicationYear != nil && *patch.PublicationYear > 0 {
			record[colPublicationYear] = *patch.PublicationYear
		}
		if patch.Genre != nil {
			record[colGenre] = *patch.Genre
		}

		update := s.builder().Update(tableBooks).Set(record).Where(goqu.C(colBookID).Eq(id)).Prepared(true)

		_, rowsAffected, err := s.exec(ctx, s.db, operationUpdateBook, update)
		if err != nil {
			return 0, err
		}

		if rowsAffected == 0 {
			return 0, librarystore.ErrBookNotFound
		}

		return int(rowsAffected), nil
	})
}

// DeleteBook removes a book that was never lent.
// An unknown id returns ErrBookNotFound, a book referenced by loans ErrBookHasLoans.
func (s Store) DeleteBook(ctx context.Context, id librarystore.BookID) error {
	return s.observed(ctx, operationDeleteBook, func(ctx context.Context) (int, error) {
		loanCount, err := s.count(ctx, s.db, operationDeleteBook,
			s.builder().From(tableLoans).Select(goqu.COUNT(goqu.Star())).Where(goqu.C(colBookID).Eq(id)).Prepared(true))
		if err != nil {
			return 0, err
		}

		if loanCount > 0 {
			return 0, librarystore.ErrBookHasLoans
		}

		_, rowsAffected, err := s.exec(ctx, s.db, operationDeleteBook,
			s.builder().Delete(tableBooks).Where(goqu.C(colBookID).Eq(id)).Prepared(true))
		if err != nil {
			return 0, err
		}

		if rowsAffected == 0 {
			return 0, librarystore.ErrBookNotFound
		}

		return int(rowsAffected), nil
	})
}

// AdjustAvailability changes the available count by delta while keeping 0 <= available <= quantity.
// An unknown id returns ErrBookNotFound, a change outside the range ErrAvailabilityOutOfRange.
func (s Store) AdjustAvailability(ctx context.Context, id librarystore.BookID, delta int) error {
	return s.observed(ctx, operationAdjustAvailability, func(ctx context.Context) (int, error) {
		return s.adjustAvailability(ctx, s.db, id, delta)
	})
}

// adjustAvailability runs the guarded availability update on db, which may be a transaction.
func (s Store) adjustAvailability(ctx context.Context, db adapters.DBQuerier, id librarystore.BookID, delta int) (int, error) {
	update := s.builder().Update(tableBooks).
		Set(goqu.Record{colAvailable: goqu.L("? + ?", goqu.C(colAvailable), delta)}).
		Where(
			goqu.C(colBookID).Eq(id),
			goqu.L("? + ?", goqu.C(colAvailable), delta).Gte(0),
			goqu.L("? + ?", goqu.C(colAvailable), delta).Lte(goqu.C(colQuantity)),
		).
		Prepared(true)

	_, rowsAffected, err := s.exec(ctx, db, operationAdjustAvailability, update)
	if err != nil {
		return 0, err
	}

	if rowsAffected > 0 {
		return int(rowsAffected), nil
	}

	books, err := s.selectBooks(ctx, db, operationAdjustAvailability, goqu.C(colBookID).Eq(id))
	if err != nil {
		return 0, err
	}

	if len(books) == 0 {
		return 0, librarystore.ErrBookNotFound
	}

	return 0, librarystore.ErrAvailabilityOutOfRange
}

// observedBooks runs a book SELECT with the given conditions as an observed operation.
func (s Store) observedBooks(ctx context.Context, operation string, conditions ...exp.Expression) ([]librarystore.Book, error) {
	var books []librarystore.Book

	err := s.observed(ctx, operation, func(ctx context.Context) (int, error) {
		var err error
		books, err = s.selectBooks(ctx, s.db, operation, conditions...)

		return len(books), err
	})

	return books, err
}

// selectBooks returns the books matching all conditions, ordered by id.
func (s Store) selectBooks(
	ctx context.Context,
	db adapters.DBQuerier,
	action string,
	conditions ...exp.Expression,
) ([]librarystore.Book, error) {

	books := make([]librarystore.Book, 0)

	selectStmt := s.builder().From(tableBooks).Select(bookColumns()...).Order(goqu.C(colBookID).Asc()).Prepared(true)
	if len(conditions) > 0 {
		selectStmt = selectStmt.Where(conditions...)
	}

	err := s.query(ctx, db, action, selectStmt, func(rows adapters.DBRows) error {
		book, err := scanBook(rows)
		if err != nil {
			return err
		}

		books = append(books, book)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return books, nil
}

// containsPattern builds a LIKE pattern matching the text anywhere.
func containsPattern(text string) string {
	return "%" + strings.TrimSpace(text) + "%"
}
