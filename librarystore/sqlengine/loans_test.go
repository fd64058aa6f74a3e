package sqlengine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func Test_Store_LendBook_DecrementsAvailable_And_ReturnLoan_RestoresIt(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 5))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))

	// act
	loanID, err := store.LendBook(ctx, librarystore.NewLoan{
		BookID: bookID, MemberID: memberID, LoanDate: "2025-01-01", DueDate: "2025-01-15",
	})

	// assert
	require.NoError(t, err)
	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 4, book.Available)

	loan, err := store.LoanByID(ctx, loanID)
	require.NoError(t, err)
	assert.Equal(t, librarystore.Loan{
		ID: loanID, BookID: bookID, MemberID: memberID, LoanDate: "2025-01-01", DueDate: "2025-01-15",
	}, loan)

	// act
	returnID, err := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: loanID, ReturnDate: "2025-01-14"})

	// assert
	require.NoError(t, err)
	assert.Positive(t, returnID)
	book, err = store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 5, book.Available)

	loan, err = store.LoanByID(ctx, loanID)
	require.NoError(t, err)
	assert.True(t, loan.IsReturned)
}

func Test_Store_LendBook_NoCopyAvailable_FailsWithoutStateChange(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 1))
	first := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	second := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Park", "2025-01-01"))
	GivenBookWasLent(t, ctx, store, bookID, first, "2025-01-01", "2025-01-15")

	// act
	_, err := store.LendBook(ctx, librarystore.NewLoan{
		BookID: bookID, MemberID: second, LoanDate: "2025-01-02", DueDate: "2025-01-16",
	})

	// assert
	assert.ErrorIs(t, err, librarystore.ErrBookNotAvailable)
	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, book.Available)
	loans, err := store.ActiveLoansByMember(ctx, second)
	require.NoError(t, err)
	assert.Empty(t, loans)
}

func Test_Store_LendBook_UnknownBookOrMember_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 2))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))

	// act
	_, errBook := store.LendBook(ctx, librarystore.NewLoan{
		BookID: bookID + 1, MemberID: memberID, LoanDate: "2025-01-01", DueDate: "2025-01-15",
	})
	_, errMember := store.LendBook(ctx, librarystore.NewLoan{
		BookID: bookID, MemberID: memberID + 1, LoanDate: "2025-01-01", DueDate: "2025-01-15",
	})

	// assert
	assert.ErrorIs(t, errBook, librarystore.ErrBookNotFound)
	assert.ErrorIs(t, errMember, librarystore.ErrConstraintViolation)

	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Available, "the failed insert must roll back the decrement")
}

func Test_Store_ReturnLoan_Twice_FailsOnSecondAttempt(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 3))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	loanID := GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-01", "2025-01-10")
	GivenLoanWasReturned(t, ctx, store, loanID, "2025-01-15")

	// act
	_, err := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: loanID, ReturnDate: "2025-01-16"})

	// assert
	assert.ErrorIs(t, err, librarystore.ErrLoanAlreadyReturned)
	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 3, book.Available)

	history, err := store.LoanHistoryByMember(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-01-15", history[0].ReturnDate)
	assert.Equal(t, 5, history[0].OverdueDays)
}

func Test_Store_ReturnLoan_DerivesOverdueDaysFromDueDate(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 2))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	lateLoan := GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-01", "2025-01-10")
	earlyLoan := GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-02", "2025-01-16")

	// act
	_, errLate := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: lateLoan, ReturnDate: "2025-01-15"})
	_, errEarly := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: earlyLoan, ReturnDate: "2025-01-12"})

	// assert
	require.NoError(t, errLate)
	require.NoError(t, errEarly)

	history, err := store.LoanHistoryByBook(ctx, bookID)
	require.NoError(t, err)
	overdueByLoan := make(map[librarystore.LoanID]int, len(history))
	for _, record := range history {
		overdueByLoan[record.ID] = record.OverdueDays
	}
	assert.Equal(t, map[librarystore.LoanID]int{lateLoan: 5, earlyLoan: 0}, overdueByLoan)
}

func Test_Store_ReturnLoan_BeforeLoanDate_FailsWithoutStateChange(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 1))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	loanID := GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-05", "2025-01-19")

	// act
	_, err := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: loanID, ReturnDate: "2025-01-04"})

	// assert
	assert.ErrorIs(t, err, librarystore.ErrReturnBeforeLoanDate)
	loan, err := store.LoanByID(ctx, loanID)
	require.NoError(t, err)
	assert.False(t, loan.IsReturned)
	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, book.Available)
}

func Test_Store_ReturnLoan_UnknownLoanOrInvalidDate_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	_, errUnknown := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: 42, ReturnDate: "2025-01-16"})
	_, errDate := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: 42, ReturnDate: "yesterday"})

	// assert
	assert.ErrorIs(t, errUnknown, librarystore.ErrLoanNotFound)
	assert.ErrorIs(t, errDate, librarystore.ErrInvalidDate)
}

func Test_Store_LoanByID_UnknownID_ReturnsNotFound(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	// act
	_, err := wrapper.GetStore().LoanByID(context.Background(), 7)

	// assert
	assert.ErrorIs(t, err, librarystore.ErrLoanNotFound)
}

func Test_Store_ActiveLoans_And_History(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 3))
	kim := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	park := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Park", "2025-01-01"))
	returned := GivenBookWasLent(t, ctx, store, bookID, kim, "2025-01-01", "2025-01-15")
	GivenLoanWasReturned(t, ctx, store, returned, "2025-01-05")
	older := GivenBookWasLent(t, ctx, store, bookID, kim, "2025-01-06", "2025-01-20")
	newer := GivenBookWasLent(t, ctx, store, bookID, park, "2025-01-08", "2025-01-22")

	// act
	activeKim, err := store.ActiveLoansByMember(ctx, kim)
	require.NoError(t, err)
	activeBook, err := store.ActiveLoansByBook(ctx, bookID)
	require.NoError(t, err)
	historyKim, err := store.LoanHistoryByMember(ctx, kim)
	require.NoError(t, err)
	historyBook, err := store.LoanHistoryByBook(ctx, bookID)
	require.NoError(t, err)
	all, err := store.ActiveLoans(ctx)
	require.NoError(t, err)

	// assert
	require.Len(t, activeKim, 1)
	assert.Equal(t, older, activeKim[0].ID)
	assert.Equal(t, "Learning Domain-Driven Design", activeKim[0].BookTitle)
	assert.Equal(t, "Kim", activeKim[0].MemberName)
	assert.Empty(t, activeKim[0].ReturnDate)

	require.Len(t, activeBook, 2)
	assert.Equal(t, newer, activeBook[0].ID, "newest loan first")
	assert.Equal(t, older, activeBook[1].ID)

	require.Len(t, historyKim, 2)
	assert.Equal(t, older, historyKim[0].ID)
	assert.Equal(t, returned, historyKim[1].ID)
	assert.True(t, historyKim[1].IsReturned)
	assert.Equal(t, "2025-01-05", historyKim[1].ReturnDate)

	assert.Len(t, historyBook, 3)

	require.Len(t, all, 2)
	assert.Equal(t, older, all[0].ID, "earliest due date first")
	assert.Equal(t, newer, all[1].ID)
}

func Test_Store_OverdueLoans_ComputesDaysAndSuspension(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 5))
	kim := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	park := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Park", "2025-01-01"))
	lessOverdue := GivenBookWasLent(t, ctx, store, bookID, kim, "2025-01-01", "2025-01-12")
	mostOverdue := GivenBookWasLent(t, ctx, store, bookID, park, "2024-12-27", "2025-01-10")
	GivenBookWasLent(t, ctx, store, bookID, park, "2025-01-10", "2025-01-24")
	returnedLate := GivenBookWasLent(t, ctx, store, bookID, kim, "2024-12-01", "2024-12-15")
	GivenLoanWasReturned(t, ctx, store, returnedLate, "2025-01-01")

	// act
	overdue, err := store.OverdueLoans(ctx, "2025-01-15")

	// assert
	require.NoError(t, err)
	require.Len(t, overdue, 2)
	assert.Equal(t, mostOverdue, overdue[0].ID)
	assert.Equal(t, 5, overdue[0].DaysOverdue)
	assert.Equal(t, 10, overdue[0].SuspensionDays)
	assert.Equal(t, "Park", overdue[0].MemberName)
	assert.Equal(t, lessOverdue, overdue[1].ID)
	assert.Equal(t, 3, overdue[1].DaysOverdue)
	assert.Equal(t, 6, overdue[1].SuspensionDays)
}

func Test_Store_LendAndReturn_KeepAvailabilityInRange(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	const quantity = 3
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", quantity))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	loanIDs := make([]librarystore.LoanID, 0)

	// act
	for i := 0; i < quantity+2; i++ {
		loanID, err := store.LendBook(ctx, librarystore.NewLoan{
			BookID: bookID, MemberID: memberID, LoanDate: "2025-01-01", DueDate: "2025-01-15",
		})
		if err == nil {
			loanIDs = append(loanIDs, loanID)
		} else {
			assert.ErrorIs(t, err, librarystore.ErrBookNotAvailable)
		}

		book, bookErr := store.BookByID(ctx, bookID)
		require.NoError(t, bookErr)
		assert.GreaterOrEqual(t, book.Available, 0)
		assert.LessOrEqual(t, book.Available, book.Quantity)
	}

	for _, loanID := range loanIDs {
		_, err := store.ReturnLoan(ctx, librarystore.NewReturn{LoanID: loanID, ReturnDate: "2025-01-10"})
		require.NoError(t, err)
	}

	// assert
	assert.Len(t, loanIDs, quantity)
	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, quantity, book.Available)
}
