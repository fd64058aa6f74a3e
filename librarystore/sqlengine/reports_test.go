package sqlengine_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func Test_Store_PopularBooks_RanksByLoanCountThenID(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	neverLent := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 3))
	lentOnce := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-2", 3))
	lentTwice := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-3", 3))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	GivenBookWasLent(t, ctx, store, lentOnce, memberID, "2025-01-01", "2025-01-15")
	first := GivenBookWasLent(t, ctx, store, lentTwice, memberID, "2025-01-01", "2025-01-15")
	GivenLoanWasReturned(t, ctx, store, first, "2025-01-03")
	GivenBookWasLent(t, ctx, store, lentTwice, memberID, "2025-01-04", "2025-01-18")

	// act
	popular, err := store.PopularBooks(ctx, 10)
	require.NoError(t, err)
	top, err := store.PopularBooks(ctx, 1)
	require.NoError(t, err)

	// assert
	expected := []librarystore.PopularBook{
		{BookID: lentTwice, Title: "Learning Domain-Driven Design", Author: "Vlad Khononov", LoanCount: 2},
		{BookID: lentOnce, Title: "Learning Domain-Driven Design", Author: "Vlad Khononov", LoanCount: 1},
		{BookID: neverLent, Title: "Learning Domain-Driven Design", Author: "Vlad Khononov", LoanCount: 0},
	}
	assert.Empty(t, cmp.Diff(expected, popular))
	assert.Empty(t, cmp.Diff(expected[:1], top))
}

func Test_Store_Inventory_ListsAllBooksWithCounters(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 2))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-01", "2025-01-15")

	// act
	inventory, err := store.Inventory(ctx)

	// assert
	require.NoError(t, err)
	require.Len(t, inventory, 1)
	assert.Equal(t, 2, inventory[0].Quantity)
	assert.Equal(t, 1, inventory[0].Available)
}

func Test_Store_MemberStats_CountsMembersWithOverdueLoansOnce(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 5))
	kim := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	park := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Park", "2025-01-01"))
	GivenMemberWasRegistered(t, ctx, store, FixtureMember("Choi", "2025-01-01"))
	GivenBookWasLent(t, ctx, store, bookID, kim, "2025-01-01", "2025-01-05")
	GivenBookWasLent(t, ctx, store, bookID, kim, "2025-01-01", "2025-01-06")
	returned := GivenBookWasLent(t, ctx, store, bookID, park, "2025-01-01", "2025-01-05")
	GivenLoanWasReturned(t, ctx, store, returned, "2025-01-09")

	// act
	stats, err := store.MemberStats(ctx, "2025-01-15")

	// assert
	require.NoError(t, err)
	assert.Equal(t, librarystore.MemberStats{TotalMembers: 3, MembersWithOverdue: 1}, stats)
}

func Test_Store_MemberStats_EmptyDatabase(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	// act
	stats, err := wrapper.GetStore().MemberStats(context.Background(), "2025-01-15")

	// assert
	require.NoError(t, err)
	assert.Equal(t, librarystore.MemberStats{}, stats)
}
