package overdueloans

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "OverdueLoans"
)

// Query represents the intent to list the unreturned loans past their due date.
type Query struct {
	AsOf librarystore.DateString
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a Query as of the calendar day of asOf.
func BuildQuery(asOf time.Time) Query {
	return Query{AsOf: librarystore.FormatDate(asOf)}
}

// OverdueLoans is the overdue report, earliest due date first.
type OverdueLoans struct {
	AsOf  librarystore.DateString    `json:"as_of"`
	Loans []librarystore.OverdueLoan `json:"loans"`
}

// ResultCount returns the number of overdue loans.
func (r OverdueLoans) ResultCount() int {
	return len(r.Loans)
}
