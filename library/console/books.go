package console

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/deletebook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findbooks"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

func (c *Console) booksMenu() menu {
	return menu{
		title: "Books",
		items: []menuItem{
			{"1", "Add book", c.addBook},
			{"2", "Search books (title/author/ISBN)", c.searchBooks},
			{"3", "Update book", c.updateBook},
			{"4", "Delete book", c.deleteBook},
			{"5", "List all books", c.listBooks},
			{"6", "Search by genre", c.booksByGenre},
			{"7", "Search by author", c.booksByAuthor},
		},
	}
}

func (c *Console) addBook(ctx context.Context) error {
	c.printer.Title("=== Add book ===")

	var book librarystore.NewBook
	var err error

	if book.Title, err = c.ask("Title"); err != nil {
		return err
	}

	if book.Author, err = c.ask("Author"); err != nil {
		return err
	}

	if book.Publisher, err = c.ask("Publisher"); err != nil {
		return err
	}

	if book.PublicationYear, err = c.askInt("Publication year", 0); err != nil {
		return err
	}

	if book.ISBN, err = c.ask("ISBN"); err != nil {
		return err
	}

	if book.Genre, err = c.ask("Genre"); err != nil {
		return err
	}

	if book.Quantity, err = c.askInt("Quantity", 1); err != nil {
		return err
	}

	result, err := c.handlers.AddBook.Handle(ctx, addbook.BuildCommand(book, c.now()))
	if err != nil {
		return err
	}

	c.printer.Success("Book added (book ID: %d)", result.EntityID)

	return nil
}

func (c *Console) searchBooks(ctx context.Context) error {
	keyword, err := c.ask("Keyword")
	if err != nil {
		return err
	}

	return c.showBooks(ctx, findbooks.BuildQueryByKeyword(keyword))
}

func (c *Console) booksByGenre(ctx context.Context) error {
	genre, err := c.ask("Genre")
	if err != nil {
		return err
	}

	return c.showBooks(ctx, findbooks.BuildQueryByGenre(genre))
}

func (c *Console) booksByAuthor(ctx context.Context) error {
	author, err := c.ask("Author")
	if err != nil {
		return err
	}

	return c.showBooks(ctx, findbooks.BuildQueryByAuthor(author))
}

func (c *Console) listBooks(ctx context.Context) error {
	return c.showBooks(ctx, findbooks.BuildQueryAll())
}

func (c *Console) showBooks(ctx context.Context, query findbooks.Query) error {
	result, err := c.handlers.FindBooks.Handle(ctx, query)
	if err != nil {
		return err
	}

	c.printer.Books(result.Books)

	return nil
}

func (c *Console) updateBook(ctx context.Context) error {
	c.printer.Title("=== Update book ===")

	bookID, err := c.askID("Book ID")
	if err != nil {
		return err
	}

	var patch librarystore.BookPatch

	if patch.Title, err = c.askOptional("New title"); err != nil {
		return err
	}

	if patch.Author, err = c.askOptional("New author"); err != nil {
		return err
	}

	if patch.Publisher, err = c.askOptional("New publisher"); err != nil {
		return err
	}

	year, err := c.askInt("New publication year (0 to keep)", 0)
	if err != nil {
		return err
	}

	if year > 0 {
		patch.PublicationYear = &year
	}

	if patch.Genre, err = c.askOptional("New genre"); err != nil {
		return err
	}

	result, err := c.handlers.UpdateBook.Handle(ctx, updatebook.BuildCommand(bookID, patch, c.now()))
	if err != nil {
		return err
	}

	if result.Idempotent {
		c.printer.Line("Nothing changed.")
		return nil
	}

	c.printer.Success("Book %d updated.", bookID)

	return nil
}

func (c *Console) deleteBook(ctx context.Context) error {
	c.printer.Title("=== Delete book ===")

	bookID, err := c.askID("Book ID")
	if err != nil {
		return err
	}

	confirmed, err := c.confirm("Really delete?")
	if err != nil {
		return err
	}

	if !confirmed {
		c.printer.Line("Deletion canceled.")
		return nil
	}

	if _, err := c.handlers.DeleteBook.Handle(ctx, deletebook.BuildCommand(bookID, c.now())); err != nil {
		return err
	}

	c.printer.Success("Book %d deleted.", bookID)

	return nil
}
