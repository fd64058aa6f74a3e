// Package returnbook implements the Return Book use case of the Loan Lifecycle Manager.
//
// Returning a loan records the return date and the overdue days, flags the loan as returned,
// and puts the copy back into stock, all in one transaction. A late return earns the member
// a borrowing suspension of twice the overdue days, which the handler reports and logs.
// The suspension is informational: nothing is stored against the member, and once all loans
// are back the member may borrow again.
package returnbook
