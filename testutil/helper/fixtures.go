package helper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine"
)

// FixtureBook returns a complete NewBook with the given ISBN and quantity.
func FixtureBook(isbn string, quantity int) librarystore.NewBook {
	return librarystore.NewBook{
		Title:           "Learning Domain-Driven Design",
		Author:          "Vlad Khononov",
		Publisher:       "O'Reilly Media, Inc.",
		PublicationYear: 2021,
		ISBN:            isbn,
		Genre:           "Software",
		Quantity:        quantity,
	}
}

// FixtureMember returns a complete NewMember registered on registrationDate.
func FixtureMember(name string, registrationDate librarystore.DateString) librarystore.NewMember {
	return librarystore.NewMember{
		Name:             name,
		Phone:            "010-1234-5678",
		Address:          "Main Street 1",
		RegistrationDate: registrationDate,
	}
}

// GivenBookWasAdded stores a book and returns its id.
func GivenBookWasAdded(t testing.TB, ctx context.Context, store sqlengine.Store, book librarystore.NewBook) librarystore.BookID { //nolint:revive
	t.Helper()

	id, err := store.AddBook(ctx, book)
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenMemberWasRegistered stores a member and returns its id.
func GivenMemberWasRegistered(t testing.TB, ctx context.Context, store sqlengine.Store, member librarystore.NewMember) librarystore.MemberID { //nolint:revive
	t.Helper()

	id, err := store.AddMember(ctx, member)
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenBookWasLent lends the book to the member and returns the loan id.
func GivenBookWasLent(
	t testing.TB,
	ctx context.Context, //nolint:revive
	store sqlengine.Store,
	bookID librarystore.BookID,
	memberID librarystore.MemberID,
	loanDate librarystore.DateString,
	dueDate librarystore.DateString,
) librarystore.LoanID {

	t.Helper()

	id, err := store.LendBook(ctx, librarystore.NewLoan{
		BookID:   bookID,
		MemberID: memberID,
		LoanDate: loanDate,
		DueDate:  dueDate,
	})
	require.NoError(t, err, "error in arranging test data")

	return id
}

// GivenLoanWasReturned returns the loan on returnDate.
func GivenLoanWasReturned(
	t testing.TB,
	ctx context.Context, //nolint:revive
	store sqlengine.Store,
	loanID librarystore.LoanID,
	returnDate librarystore.DateString,
) {

	t.Helper()

	_, err := store.ReturnLoan(ctx, librarystore.NewReturn{
		LoanID:     loanID,
		ReturnDate: returnDate,
	})
	require.NoError(t, err, "error in arranging test data")
}
