// Package lendbook implements the Lend Book use case of the Loan Lifecycle Manager.
//
// A member may borrow a book when the member exists and has no overdue loans,
// and the book exists and has at least one available copy. A successful loan
// has a due date of loan date plus the loan period and takes one copy out of stock.
//
// It follows the Load-Decide-Apply pattern with a separation between
// infrastructure concerns (CommandHandler) and pure business logic (Decide function).
// The store applies the loan in one transaction, so a failure leaves no partial state.
package lendbook
