package librarystore

// Instead of implementing full value objects, I'm using some alias types here ...

// BookID identifies a book row.
type BookID = int64

// MemberID identifies a member row.
type MemberID = int64

// LoanID identifies a loan row.
type LoanID = int64

// DateString is a calendar date in the form YYYY-MM-DD.
type DateString = string

// Book is a catalog entry with its stock counters.
// Invariant: 0 <= Available <= Quantity.
type Book struct {
	ID              BookID `json:"book_id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Publisher       string `json:"publisher"`
	PublicationYear int    `json:"publication_year"`
	ISBN            string `json:"isbn"`
	Genre           string `json:"genre"`
	Quantity        int    `json:"quantity"`
	Available       int    `json:"available"`
}

// IsAvailable reports whether at least one copy can be lent.
func (b Book) IsAvailable() bool {
	return b.Available > 0
}

// NewBook carries the data for a book that is not stored yet.
type NewBook struct {
	Title           string
	Author          string
	Publisher       string
	PublicationYear int
	ISBN            string
	Genre           string
	Quantity        int
}

// BookPatch is a partial book update; nil fields are left untouched.
// A non-nil PublicationYear is only applied when it is positive.
type BookPatch struct {
	Title           *string
	Author          *string
	Publisher       *string
	PublicationYear *int
	Genre           *string
}

// IsEmpty reports whether the patch would change nothing.
func (p BookPatch) IsEmpty() bool {
	return p.Title == nil &&
		p.Author == nil &&
		p.Publisher == nil &&
		(p.PublicationYear == nil || *p.PublicationYear <= 0) &&
		p.Genre == nil
}

// Member is a registered library member.
type Member struct {
	ID               MemberID   `json:"member_id"`
	Name             string     `json:"name"`
	Phone            string     `json:"phone"`
	Address          string     `json:"address"`
	RegistrationDate DateString `json:"registration_date"`
}

// NewMember carries the data for a member that is not stored yet.
type NewMember struct {
	Name             string
	Phone            string
	Address          string
	RegistrationDate DateString
}

// MemberPatch is a partial member update; nil fields are left untouched.
type MemberPatch struct {
	Name    *string
	Phone   *string
	Address *string
}

// IsEmpty reports whether the patch would change nothing.
func (p MemberPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil
}

// Loan is a book borrowed by a member. Loans are never deleted; returning flags them.
type Loan struct {
	ID         LoanID     `json:"loan_id"`
	BookID     BookID     `json:"book_id"`
	MemberID   MemberID   `json:"member_id"`
	LoanDate   DateString `json:"loan_date"`
	DueDate    DateString `json:"due_date"`
	IsReturned bool       `json:"is_returned"`
}

// NewLoan carries the data for a loan that is not stored yet.
type NewLoan struct {
	BookID   BookID
	MemberID MemberID
	LoanDate DateString
	DueDate  DateString
}

// Return is the append-only record written once per loan when the book comes back.
type Return struct {
	ID          int64      `json:"return_id"`
	LoanID      LoanID     `json:"loan_id"`
	ReturnDate  DateString `json:"return_date"`
	OverdueDays int        `json:"overdue_days"`
}

// NewReturn carries the data for a return that is not stored yet.
// The overdue days snapshot is derived from the loan's due date when the return is stored.
type NewReturn struct {
	LoanID     LoanID
	ReturnDate DateString
}

// LoanRecord is a loan joined with its book title, member name and, once returned, the return data.
type LoanRecord struct {
	Loan
	BookTitle   string     `json:"book_title"`
	MemberName  string     `json:"member_name"`
	ReturnDate  DateString `json:"return_date,omitempty"`
	OverdueDays int        `json:"overdue_days"`
}

// OverdueLoan is an unreturned loan past its due date as of a reference date.
type OverdueLoan struct {
	LoanRecord
	DaysOverdue    int `json:"days_overdue"`
	SuspensionDays int `json:"suspension_days"`
}

// PopularBook is a book with the number of times it was lent.
type PopularBook struct {
	BookID    BookID `json:"book_id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	LoanCount int    `json:"loan_count"`
}

// MemberStats summarizes the member registry.
type MemberStats struct {
	TotalMembers       int `json:"total_members"`
	MembersWithOverdue int `json:"members_with_overdue"`
}
