package memberstatus_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstatus"
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
	handler := memberstatus.NewQueryHandler(store)

	// arrange
	bookID := GivenBookWasAdded(t, ctx, store, FixtureBook("isbn-1", 3))
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))
	GivenBookWasLent(t, ctx, store, bookID, memberID, "2025-01-01", "2025-01-15")

	testCases := []struct {
		description        string
		asOf               time.Time
		expectedOverdue    int
		expectedSuspension int
		expectedCanBorrow  bool
	}{
		{"on due date", time.Date(2025, 1, 15, 23, 0, 0, 0, time.UTC), 0, 0, true},
		{"three days late", time.Date(2025, 1, 18, 8, 0, 0, 0, time.UTC), 3, 6, false},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			status, err := handler.Handle(ctx, memberstatus.BuildQuery(memberID, tc.asOf))

			// assert
			require.NoError(t, err)
			assert.Equal(t, "Kim", status.Member.Name)
			assert.Equal(t, tc.expectedOverdue, status.OverdueDays)
			assert.Equal(t, tc.expectedSuspension, status.SuspensionDays)
			assert.Equal(t, tc.expectedCanBorrow, status.CanBorrow)
			assert.Len(t, status.ActiveLoans, 1)
		})
	}
}

func Test_QueryHandler_Handle_UnknownMember_Fails(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := memberstatus.NewQueryHandler(wrapper.GetStore())

	// act
	_, err := handler.Handle(context.Background(), memberstatus.BuildQuery(404, time.Now()))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrMemberNotFound)
}
