package findmembers

import (
	"strings"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	queryType = "FindMembers"
)

// Criterion selects how members are looked up.
type Criterion string

// The supported lookup criteria.
const (
	ByID   Criterion = "id"
	ByName Criterion = "name"
	All    Criterion = "all"
	Count  Criterion = "count"
)

// Query represents the intent to look up members.
type Query struct {
	By       Criterion
	MemberID librarystore.MemberID
	Name     string
	Limit    int
}

// QueryType returns the type identifier for this query, used for observability and routing.
func (q Query) QueryType() string {
	return queryType
}

// BuildQueryByID creates a Query for a single member.
func BuildQueryByID(memberID librarystore.MemberID) Query {
	return Query{By: ByID, MemberID: memberID}
}

// BuildQueryByName creates a Query matching part of the member name.
// A limit of zero or less uses the limit the handler was configured with.
func BuildQueryByName(name string, limit int) Query {
	return Query{By: ByName, Name: strings.TrimSpace(name), Limit: limit}
}

// BuildQueryAll creates a Query for all members.
func BuildQueryAll() Query {
	return Query{By: All}
}

// BuildQueryCount creates a Query that only counts members.
func BuildQueryCount() Query {
	return Query{By: Count}
}

// Members is the query result. Total is set for every criterion; for Count it is the only field.
type Members struct {
	Members []librarystore.Member `json:"members,omitempty"`
	Total   int                   `json:"total"`
}

// ResultCount returns the number of members returned.
func (r Members) ResultCount() int {
	return len(r.Members)
}
