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

func Test_Store_AddMember_And_MemberByID(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	id, err := store.AddMember(ctx, FixtureMember("Lee Minho", "2025-03-01"))

	// assert
	require.NoError(t, err)
	member, err := store.MemberByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, librarystore.Member{
		ID:               id,
		Name:             "Lee Minho",
		Phone:            "010-1234-5678",
		Address:          "Main Street 1",
		RegistrationDate: "2025-03-01",
	}, member)
}

func Test_Store_AddMember_InvalidInput_Fails(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	_, errName := store.AddMember(ctx, FixtureMember(" ", "2025-03-01"))
	_, errDate := store.AddMember(ctx, FixtureMember("Lee Minho", "2025-02-30"))

	// assert
	assert.ErrorIs(t, errName, librarystore.ErrMissingRequiredField)
	assert.ErrorIs(t, errDate, librarystore.ErrInvalidDate)
}

func Test_Store_MemberByID_UnknownID_ReturnsNotFound(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()

	// act
	_, err := wrapper.GetStore().MemberByID(context.Background(), 99)

	// assert
	assert.ErrorIs(t, err, librarystore.ErrMemberNotFound)
}

func Test_Store_SearchMembersByName_RespectsLimit(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim Jisoo", "2025-01-01"))
	GivenMemberWasRegistered(t, ctx, store, FixtureMember("Park Jimin", "2025-01-01"))
	GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim Taehyung", "2025-01-01"))

	// act
	unlimited, err := store.SearchMembersByName(ctx, "kim", 0)
	require.NoError(t, err)
	limited, err := store.SearchMembersByName(ctx, "kim", 1)
	require.NoError(t, err)

	// assert
	require.Len(t, unlimited, 2)
	assert.Equal(t, "Kim Jisoo", unlimited[0].Name)
	assert.Equal(t, "Kim Taehyung", unlimited[1].Name)
	require.Len(t, limited, 1)
	assert.Equal(t, "Kim Jisoo", limited[0].Name)
}

func Test_Store_AllMembers_And_CountMembers(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	GivenMemberWasRegistered(t, ctx, store, FixtureMember("A", "2025-01-01"))
	GivenMemberWasRegistered(t, ctx, store, FixtureMember("B", "2025-01-02"))

	// act
	members, err := store.AllMembers(ctx)
	require.NoError(t, err)
	count, err := store.CountMembers(ctx)
	require.NoError(t, err)

	// assert
	assert.Len(t, members, 2)
	assert.Equal(t, 2, count)
}

func Test_Store_UpdateMember(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	id := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))

	// act
	err := store.UpdateMember(ctx, id, librarystore.MemberPatch{Phone: ptr("010-9999-0000")})
	errEmpty := store.UpdateMember(ctx, id, librarystore.MemberPatch{})
	errUnknown := store.UpdateMember(ctx, id+1, librarystore.MemberPatch{Name: ptr("Park")})

	// assert
	require.NoError(t, err)
	member, err := store.MemberByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Kim", member.Name)
	assert.Equal(t, "010-9999-0000", member.Phone)
	assert.ErrorIs(t, errEmpty, librarystore.ErrNoFieldsToUpdate)
	assert.ErrorIs(t, errUnknown, librarystore.ErrMemberNotFound)
}

func Test_Store_DeleteMember(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	withoutLoans := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	withLoans := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Park", "2025-01-01"))
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 1))
	GivenBookWasLent(t, ctx, store, bookID, withLoans, "2025-01-02", "2025-01-16")

	// act
	errWithoutLoans := store.DeleteMember(ctx, withoutLoans)
	errWithLoans := store.DeleteMember(ctx, withLoans)
	errUnknown := store.DeleteMember(ctx, withoutLoans)

	// assert
	assert.NoError(t, errWithoutLoans)
	assert.ErrorIs(t, errWithLoans, librarystore.ErrMemberHasLoans)
	assert.ErrorIs(t, errUnknown, librarystore.ErrMemberNotFound)
}

func Test_Store_MemberOverdueDays_TakesTheMostOverdueActiveLoan(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// arrange
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	first := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 1))
	second := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-2", 1))
	third := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-3", 1))
	GivenBookWasLent(t, ctx, store, first, memberID, "2025-01-01", "2025-01-10")
	GivenBookWasLent(t, ctx, store, second, memberID, "2025-01-05", "2025-01-13")
	returned := GivenBookWasLent(t, ctx, store, third, memberID, "2024-12-01", "2024-12-15")
	GivenLoanWasReturned(t, ctx, store, returned, "2025-01-02")

	// act
	days, err := store.MemberOverdueDays(ctx, memberID, "2025-01-15")
	require.NoError(t, err)
	notYet, err := store.MemberOverdueDays(ctx, memberID, "2025-01-10")
	require.NoError(t, err)
	_, errDate := store.MemberOverdueDays(ctx, memberID, "15.01.2025")

	// assert
	assert.Equal(t, 5, days)
	assert.Equal(t, 0, notYet, "a loan due today is not overdue")
	assert.Equal(t, 10, librarystore.SuspensionDays(days))
	assert.ErrorIs(t, errDate, librarystore.ErrInvalidDate)
}
