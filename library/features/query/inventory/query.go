package inventory

import (
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "Inventory"
)

// Query represents the intent to list the stock of every book.
type Query struct{}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// Inventory lists every book with its copies and sums them up.
type Inventory struct {
	Books           []librarystore.Book `json:"books"`
	TotalCopies     int                 `json:"total_copies"`
	AvailableCopies int                 `json:"available_copies"`
	LentCopies      int                 `json:"lent_copies"`
}

// ResultCount returns the number of books.
func (r Inventory) ResultCount() int {
	return len(r.Books)
}
