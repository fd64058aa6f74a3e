package findloans

import (
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "FindLoans"
)

// Criterion selects which loans are returned.
type Criterion string

// The supported lookup criteria.
const (
	ByID            Criterion = "id"
	ActiveByMember  Criterion = "active_by_member"
	ActiveByBook    Criterion = "active_by_book"
	HistoryByMember Criterion = "history_by_member"
	HistoryByBook   Criterion = "history_by_book"
)

// Query represents the intent to look up loans. ID is a loan, member, or book id depending on By.
type Query struct {
	By Criterion
	ID int64
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQueryByID creates a Query for a single loan.
func BuildQueryByID(loanID librarystore.LoanID) Query {
	return Query{By: ByID, ID: loanID}
}

// BuildQueryActiveByMember creates a Query for the unreturned loans of a member.
func BuildQueryActiveByMember(memberID librarystore.MemberID) Query {
	return Query{By: ActiveByMember, ID: memberID}
}

// BuildQueryActiveByBook creates a Query for the unreturned loans of a book.
func BuildQueryActiveByBook(bookID librarystore.BookID) Query {
	return Query{By: ActiveByBook, ID: bookID}
}

// BuildQueryHistoryByMember creates a Query for all loans of a member.
func BuildQueryHistoryByMember(memberID librarystore.MemberID) Query {
	return Query{By: HistoryByMember, ID: memberID}
}

// BuildQueryHistoryByBook creates a Query for all loans of a book.
func BuildQueryHistoryByBook(bookID librarystore.BookID) Query {
	return Query{By: HistoryByBook, ID: bookID}
}

// Loans is the query result, newest loan first.
type Loans struct {
	Loans []librarystore.LoanRecord `json:"loans"`
}

// ResultCount returns the number of loans found.
func (r Loans) ResultCount() int {
	return len(r.Loans)
}
