package popularbooks

import (
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "PopularBooks"
)

// Query represents the intent to rank books by how often they were lent.
type Query struct {
	Limit int
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a Query for the top limit books.
// A limit of zero or less uses the limit the handler was configured with.
func BuildQuery(limit int) Query {
	return Query{Limit: limit}
}

// PopularBooks is the ranking, most lent first.
type PopularBooks struct {
	Books []librarystore.PopularBook `json:"books"`
}

// ResultCount returns the number of ranked books.
func (r PopularBooks) ResultCount() int {
	return len(r.Books)
}
