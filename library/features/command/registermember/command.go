package registermember

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	commandType = "RegisterMember"
)

// Command represents the intent to register a new library member.
type Command struct {
	Member     librarystore.NewMember
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. An empty registration date defaults to the day of occurredAt.
func BuildCommand(member librarystore.NewMember, occurredAt time.Time) Command {
	member.Name = strings.TrimSpace(member.Name)
	member.RegistrationDate = strings.TrimSpace(member.RegistrationDate)

	if member.RegistrationDate == "" {
		member.RegistrationDate = librarystore.FormatDate(occurredAt)
	}

	return Command{
		Member:     member,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
