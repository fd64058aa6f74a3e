package activeloans

import (
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "ActiveLoans"
)

// Query represents the intent to list every unreturned loan.
type Query struct{}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a new Query.
func BuildQuery() Query {
	return Query{}
}

// ActiveLoans is the query result, earliest due date first.
type ActiveLoans struct {
	Loans []librarystore.LoanRecord `json:"loans"`
}

// ResultCount returns the number of active loans.
func (r ActiveLoans) ResultCount() int {
	return len(r.Loans)
}
