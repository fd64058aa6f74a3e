package memberstats

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "MemberStats"
)

// Query represents the intent to summarize the member registry as of a date.
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

// MemberStats is the query result.
type MemberStats struct {
	AsOf librarystore.DateString `json:"as_of"`
	librarystore.MemberStats
}

// ResultCount always returns 1.
func (r MemberStats) ResultCount() int {
	return 1
}
