package returnbook_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func Test_CommandHandler_Handle_LateReturn_RestoresStockAndWarns(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	logHandler := NewTestLogHandler(false)
	handler := returnbook.NewCommandHandler(store, returnbook.WithLogger(slog.New(logHandler)))

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 5))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2024-12-01"))
	loanID := GivenBookWasLent(t, ctx, store, bookID, memberID, "2024-12-27", "2025-01-10")

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(loanID, "2025-01-15", returnTime))

	// assert
	require.NoError(t, err)
	assert.Positive(t, result.EntityID)

	event, ok := result.Event.(core.BookReturned)
	require.True(t, ok)
	assert.Equal(t, 5, event.OverdueDays)
	assert.Equal(t, 10, event.SuspensionDays)

	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 5, book.Available)

	history, err := store.LoanHistoryByMember(ctx, memberID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].IsReturned)
	assert.Equal(t, "2025-01-15", history[0].ReturnDate)
	assert.Equal(t, 5, history[0].OverdueDays)

	assert.True(t, logHandler.HasWarnLogWithMessage("book returned late, member is suspended").
		WithAttr("suspension_days", "10").Assert())
}

func Test_CommandHandler_Handle_OnTimeReturn_DoesNotWarn(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	logHandler := NewTestLogHandler(false)
	handler := returnbook.NewCommandHandler(store, returnbook.WithLogger(slog.New(logHandler)))

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 1))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2024-12-01"))
	loanID := GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-01", "2025-01-15")

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(loanID, "2025-01-15", returnTime))

	// assert
	require.NoError(t, err)
	event, ok := result.Event.(core.BookReturned)
	require.True(t, ok)
	assert.Zero(t, event.SuspensionDays)
	assert.Equal(t, 0, logHandler.CountWithLevel(slog.LevelWarn))
}

func Test_CommandHandler_Handle_SecondReturn_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := returnbook.NewCommandHandler(store)

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 2))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2024-12-01"))
	loanID := GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-01", "2025-01-15")
	_, err := handler.Handle(ctx, returnbook.BuildCommand(loanID, "2025-01-10", returnTime))
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, returnbook.BuildCommand(loanID, "2025-01-11", returnTime))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrLoanAlreadyReturned)
	assert.Equal(t, core.ReturningBookFailedEventType, result.Event.IsEventType())

	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, 2, book.Available)
}

func Test_CommandHandler_Handle_UnknownLoan_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := returnbook.NewCommandHandler(wrapper.GetStore())

	// act
	_, err := handler.Handle(ctx, returnbook.BuildCommandReturnedToday(999, returnTime))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrLoanNotFound)
}
