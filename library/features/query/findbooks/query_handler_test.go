package findbooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findbooks"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := findbooks.NewQueryHandler(store)

	// arrange
	dddID := GivenBookWasAdded(t, ctx, store, FixtureBook("978-1098100131", 2))
	gopl := librarystore.NewBook{
		Title: "The Go Programming Language", Author: "Alan Donovan", Publisher: "Addison-Wesley",
		PublicationYear: 2015, ISBN: "978-0134190440", Genre: "Programming", Quantity: 1,
	}
	goplID := GivenBookWasAdded(t, ctx, store, gopl)

	testCases := []struct {
		description string
		query       findbooks.Query
		expectedIDs []librarystore.BookID
	}{
		{"by id", findbooks.BuildQueryByID(goplID), []librarystore.BookID{goplID}},
		{"keyword in title ignoring case", findbooks.BuildQueryByKeyword("domain-DRIVEN"), []librarystore.BookID{dddID}},
		{"keyword in isbn", findbooks.BuildQueryByKeyword("0134190440"), []librarystore.BookID{goplID}},
		{"genre", findbooks.BuildQueryByGenre("programming"), []librarystore.BookID{goplID}},
		{"author", findbooks.BuildQueryByAuthor("khononov"), []librarystore.BookID{dddID}},
		{"no match", findbooks.BuildQueryByKeyword("cobol"), nil},
		{"all", findbooks.BuildQueryAll(), []librarystore.BookID{dddID, goplID}},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result, err := handler.Handle(ctx, tc.query)

			// assert
			require.NoError(t, err)
			assert.Equal(t, len(tc.expectedIDs), result.ResultCount())

			ids := make([]librarystore.BookID, 0, len(result.Books))
			for _, book := range result.Books {
				ids = append(ids, book.ID)
			}
			assert.ElementsMatch(t, tc.expectedIDs, ids)
		})
	}
}

func Test_QueryHandler_Handle_Error(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := findbooks.NewQueryHandler(wrapper.GetStore())

	testCases := []struct {
		description string
		query       findbooks.Query
		expectedErr error
	}{
		{"unknown id", findbooks.BuildQueryByID(404), librarystore.ErrBookNotFound},
		{"blank keyword", findbooks.BuildQueryByKeyword("  "), librarystore.ErrMissingRequiredField},
		{"unknown criterion", findbooks.Query{By: "publisher"}, findbooks.ErrUnknownCriterion},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			_, err := handler.Handle(context.Background(), tc.query)

			// assert
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
