package findbooks

import (
	"strings"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "FindBooks"
)

// Criterion selects how books are looked up.
type Criterion string

// The supported lookup criteria.
const (
	ByID      Criterion = "id"
	ByKeyword Criterion = "keyword"
	ByGenre   Criterion = "genre"
	ByAuthor  Criterion = "author"
	All       Criterion = "all"
)

// Query represents the intent to look up books.
type Query struct {
	By     Criterion
	BookID librarystore.BookID
	Text   string
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQueryByID creates a Query for a single book.
func BuildQueryByID(bookID librarystore.BookID) Query {
	return Query{By: ByID, BookID: bookID}
}

// BuildQueryByKeyword creates a Query matching title, author, or ISBN.
func BuildQueryByKeyword(keyword string) Query {
	return Query{By: ByKeyword, Text: strings.TrimSpace(keyword)}
}

// BuildQueryByGenre creates a Query matching the genre.
func BuildQueryByGenre(genre string) Query {
	return Query{By: ByGenre, Text: strings.TrimSpace(genre)}
}

// BuildQueryByAuthor creates a Query matching the author.
func BuildQueryByAuthor(author string) Query {
	return Query{By: ByAuthor, Text: strings.TrimSpace(author)}
}

// BuildQueryAll creates a Query for the whole catalog.
func BuildQueryAll() Query {
	return Query{By: All}
}

// Books is the query result.
type Books struct {
	Books []librarystore.Book `json:"books"`
}

// ResultCount returns the number of books found.
func (r Books) ResultCount() int {
	return len(r.Books)
}
