package memberstatus

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "MemberStatus"
)

// Query represents the intent to check whether a member may borrow as of a date.
type Query struct {
	MemberID librarystore.MemberID
	AsOf     librarystore.DateString
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQuery creates a Query for the member as of the calendar day of asOf.
func BuildQuery(memberID librarystore.MemberID, asOf time.Time) Query {
	return Query{MemberID: memberID, AsOf: librarystore.FormatDate(asOf)}
}

// Status is the borrowing status of a member.
type Status struct {
	Member         librarystore.Member       `json:"member"`
	AsOf           librarystore.DateString   `json:"as_of"`
	OverdueDays    int                       `json:"overdue_days"`
	SuspensionDays int                       `json:"suspension_days"`
	CanBorrow      bool                      `json:"can_borrow"`
	ActiveLoans    []librarystore.LoanRecord `json:"active_loans"`
}

// ResultCount always returns 1, a status describes exactly one member.
func (r Status) ResultCount() int {
	return 1
}
