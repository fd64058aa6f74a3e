package popularbooks_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/features/query/popularbooks"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func Test_QueryHandler_Handle(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	never := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 3))
	once := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-2", 3))
	twice := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-3", 3))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	GivenBookWasLent(t, ctx, store, once, memberID, "2025-01-01", "2025-01-15")
	GivenBookWasLent(t, ctx, store, twice, memberID, "2025-01-01", "2025-01-15")
	GivenBookWasLent(t, ctx, store, twice, memberID, "2025-01-02", "2025-01-16")

	t.Run("ranking includes books never lent", func(t *testing.T) {
		// act
		result, err := popularbooks.NewQueryHandler(store).Handle(ctx, popularbooks.BuildQuery(0))

		// assert
		require.NoError(t, err)
		require.Equal(t, 3, result.ResultCount())
		assert.Equal(t, twice, result.Books[0].BookID)
		assert.Equal(t, 2, result.Books[0].LoanCount)
		assert.Equal(t, once, result.Books[1].BookID)
		assert.Equal(t, never, result.Books[2].BookID)
		assert.Zero(t, result.Books[2].LoanCount)
	})

	t.Run("configured limit applies to queries without one", func(t *testing.T) {
		// act
		result, err := popularbooks.NewQueryHandler(store, popularbooks.WithDefaultLimit(1)).
			Handle(ctx, popularbooks.BuildQuery(0))

		// assert
		require.NoError(t, err)
		assert.Equal(t, 1, result.ResultCount())
	})

	t.Run("query limit wins", func(t *testing.T) {
		// act
		result, err := popularbooks.NewQueryHandler(store, popularbooks.WithDefaultLimit(1)).
			Handle(ctx, popularbooks.BuildQuery(2))

		// assert
		require.NoError(t, err)
		assert.Equal(t, 2, result.ResultCount())
	})
}
