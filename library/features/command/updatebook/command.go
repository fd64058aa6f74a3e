package updatebook

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	commandType = "UpdateBook"
)

// Command represents the intent to change catalog data of a book.
// Stock counters are not part of a book update.
type Command struct {
	BookID     librarystore.BookID
	Patch      librarystore.BookPatch
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command with the provided parameters.
func BuildCommand(bookID librarystore.BookID, patch librarystore.BookPatch, occurredAt time.Time) Command {
	return Command{
		BookID:     bookID,
		Patch:      patch,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
