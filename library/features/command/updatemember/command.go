package updatemember

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	commandType = "UpdateMember"
)

// Command represents the intent to change the contact data of a member.
type Command struct {
	MemberID   librarystore.MemberID
	Patch      librarystore.MemberPatch
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(memberID librarystore.MemberID, patch librarystore.MemberPatch, occurredAt time.Time) Command {
	return Command{
		MemberID:   memberID,
		Patch:      patch,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
