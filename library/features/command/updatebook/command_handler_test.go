package updatebook_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func ptr[T any](v T) *T {
	return &v
}

func storedBook() updatebook.State {
	return updatebook.State{
		BookExists: true,
		Book: librarystore.Book{
			ID: 1, Title: "Refactoring", Author: "Martin Fowler", Publisher: "Addison-Wesley",
			PublicationYear: 2018, ISBN: "isbn-1", Genre: "Software", Quantity: 2, Available: 2,
		},
	}
}

func Test_Decide_OnlyChangedFieldsAreKept(t *testing.T) {
	// arrange
	patch := librarystore.BookPatch{
		Title:           ptr("Refactoring"),
		Genre:           ptr("Programming"),
		PublicationYear: ptr(0),
	}

	// act
	result := updatebook.Decide(storedBook(), updatebook.BuildCommand(1, patch, time.Now()))

	// assert
	require.NoError(t, result.HasError())
	event, ok := result.Event.(core.BookUpdated)
	require.True(t, ok)
	assert.Nil(t, event.Patch.Title)
	assert.Nil(t, event.Patch.PublicationYear)
	assert.Equal(t, "Programming", *event.Patch.Genre)
}

func Test_Decide_SameValues_IsIdempotent(t *testing.T) {
	// arrange
	patch := librarystore.BookPatch{Author: ptr("Martin Fowler"), PublicationYear: ptr(2018)}

	// act
	result := updatebook.Decide(storedBook(), updatebook.BuildCommand(1, patch, time.Now()))

	// assert
	assert.True(t, result.IsIdempotent())
}

func Test_Decide_Error(t *testing.T) {
	testCases := []struct {
		description string
		state       updatebook.State
		patch       librarystore.BookPatch
		expectedErr error
	}{
		{"unknown book", updatebook.State{}, librarystore.BookPatch{Genre: ptr("x")}, librarystore.ErrBookNotFound},
		{"empty patch", storedBook(), librarystore.BookPatch{}, librarystore.ErrNoFieldsToUpdate},
		{"only non-positive year", storedBook(), librarystore.BookPatch{PublicationYear: ptr(-1)}, librarystore.ErrNoFieldsToUpdate},
		{"blank title", storedBook(), librarystore.BookPatch{Title: ptr("  ")}, librarystore.ErrMissingRequiredField},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := updatebook.Decide(tc.state, updatebook.BuildCommand(1, tc.patch, time.Now()))

			// assert
			assert.ErrorIs(t, result.HasError(), tc.expectedErr)
			assert.Equal(t, core.UpdatingBookFailedEventType, result.Event.IsEventType())
		})
	}
}

func Test_CommandHandler_Handle_UpdatesBook(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := updatebook.NewCommandHandler(store)

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 2))

	// act
	result, err := handler.Handle(ctx, updatebook.BuildCommand(bookID, librarystore.BookPatch{
		Publisher:       ptr("O'Reilly"),
		PublicationYear: ptr(2022),
	}, time.Now()))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	book, err := store.BookByID(ctx, bookID)
	require.NoError(t, err)
	assert.Equal(t, "O'Reilly", book.Publisher)
	assert.Equal(t, 2022, book.PublicationYear)
	assert.Equal(t, "Learning Domain-Driven Design", book.Title)
}

func Test_CommandHandler_Handle_RepeatedUpdate_IsIdempotent(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := updatebook.NewCommandHandler(store)

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 2))
	command := updatebook.BuildCommand(bookID, librarystore.BookPatch{Genre: ptr("Architecture")}, time.Now())
	_, err := handler.Handle(ctx, command)
	require.NoError(t, err)

	// act
	result, err := handler.Handle(ctx, command)

	// assert
	require.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.Nil(t, result.Event)
}

func Test_CommandHandler_Handle_UnknownBook_Fails(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := updatebook.NewCommandHandler(wrapper.GetStore())

	// act
	_, err := handler.Handle(context.Background(),
		updatebook.BuildCommand(404, librarystore.BookPatch{Genre: ptr("x")}, time.Now()))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrBookNotFound)
}
