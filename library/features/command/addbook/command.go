package addbook

import (
	"strings"
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	commandType = "AddBook"
)

// Command represents the intent to add a book to the catalog.
type Command struct {
	Book       librarystore.NewBook
	OccurredAt core.OccurredAtTS
}

// CommandType returns the type identifier for this command, used for observability and routing.
func (c Command) CommandType() string {
	return commandType
}

// BuildCommand creates a new Command. Surrounding whitespace of title and ISBN is removed.
func BuildCommand(book librarystore.NewBook, occurredAt time.Time) Command {
	book.Title = strings.TrimSpace(book.Title)
	book.ISBN = strings.TrimSpace(book.ISBN)

	return Command{
		Book:       book,
		OccurredAt: core.ToOccurredAt(occurredAt),
	}
}
