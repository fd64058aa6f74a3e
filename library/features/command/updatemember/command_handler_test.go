package updatemember_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/features/command/updatemember"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func text(s string) *string {
	return &s
}

func Test_Decide(t *testing.T) {
	stored := updatemember.State{
		MemberExists: true,
		Member:       librarystore.Member{ID: 3, Name: "Kim", Phone: "1", Address: "A"},
	}

	testCases := []struct {
		description     string
		state           updatemember.State
		patch           librarystore.MemberPatch
		expectedErr     error
		expectedIdemp   bool
		expectedChanges librarystore.MemberPatch
	}{
		{
			description:     "phone changes",
			state:           stored,
			patch:           librarystore.MemberPatch{Name: text("Kim"), Phone: text("2")},
			expectedChanges: librarystore.MemberPatch{Phone: text("2")},
		},
		{
			description:   "nothing changes",
			state:         stored,
			patch:         librarystore.MemberPatch{Address: text("A")},
			expectedIdemp: true,
		},
		{description: "unknown", state: updatemember.State{}, patch: librarystore.MemberPatch{Phone: text("2")}, expectedErr: librarystore.ErrMemberNotFound},
		{description: "empty patch", state: stored, expectedErr: librarystore.ErrNoFieldsToUpdate},
		{description: "blank name", state: stored, patch: librarystore.MemberPatch{Name: text(" ")}, expectedErr: librarystore.ErrMissingRequiredField},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			// act
			result := updatemember.Decide(tc.state, updatemember.BuildCommand(3, tc.patch, time.Now()))

			// assert
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, result.HasError(), tc.expectedErr)
				assert.Equal(t, core.UpdatingMemberFailedEventType, result.Event.IsEventType())
			case tc.expectedIdemp:
				assert.True(t, result.IsIdempotent())
			default:
				event, ok := result.Event.(core.MemberUpdated)
				require.True(t, ok)
				assert.Equal(t, tc.expectedChanges, event.Patch)
			}
		})
	}
}

func Test_CommandHandler_Handle_UpdatesMember(t *testing.T) {
	// setup
	ctx := context.Background()
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	store := wrapper.GetStore()
	handler := updatemember.NewCommandHandler(store)

	// arrange
	memberID := GivenMemberWasRegistered(t, ctx, store, FixtureMember("Kim", "2025-01-01"))

	// act
	result, err := handler.Handle(ctx, updatemember.BuildCommand(memberID,
		librarystore.MemberPatch{Address: text("Harbour Road 7")}, time.Now()))

	// assert
	require.NoError(t, err)
	assert.False(t, result.Idempotent)

	member, err := store.MemberByID(ctx, memberID)
	require.NoError(t, err)
	assert.Equal(t, "Harbour Road 7", member.Address)
	assert.Equal(t, "010-1234-5678", member.Phone)
	assert.Equal(t, "2025-01-01", member.RegistrationDate)
}

func Test_CommandHandler_Handle_UnknownMember_Fails(t *testing.T) {
	// setup
	wrapper := CreateWrapperWithTestConfig(t)
	defer wrapper.Close()
	handler := updatemember.NewCommandHandler(wrapper.GetStore())

	// act
	_, err := handler.Handle(context.Background(),
		updatemember.BuildCommand(404, librarystore.MemberPatch{Name: text("x")}, time.Now()))

	// assert
	assert.ErrorIs(t, err, librarystore.ErrMemberNotFound)
	assert.ErrorIs(t, err, core.ErrBusinessRuleViolated)
}
