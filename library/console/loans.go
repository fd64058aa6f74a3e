package console

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/activeloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
)

func (c *Console) loansMenu() menu {
	return menu{
		title: "Loans",
		items: []menuItem{
			{"1", "Lend book", c.lendBook},
			{"2", "Return book", c.returnBook},
			{"3", "Active loans of a member", c.memberActiveLoans},
			{"4", "All active loans", c.allActiveLoans},
			{"5", "Overdue loans", c.overdueLoans},
			{"6", "Loan history (member)", c.memberLoanHistory},
			{"7", "Loan history (book)", c.bookLoanHistory},
		},
	}
}

func (c *Console) lendBook(ctx context.Context) error {
	c.printer.Title("=== Lend book ===")

	memberID, err := c.askID("Member ID")
	if err != nil {
		return err
	}

	bookID, err := c.askID("Book ID")
	if err != nil {
		return err
	}

	period, err := c.askInt("Loan period in days (Enter for default)", 0)
	if err != nil {
		return err
	}

	result, err := c.handlers.LendBook.Handle(ctx, lendbook.BuildCommand(bookID, memberID, period, c.now()))
	if err != nil {
		return err
	}

	if lent, ok := result.Event.(core.BookLent); ok {
		c.printer.Success("Book lent (loan ID: %d), due on %s", result.EntityID, lent.DueDate)
		return nil
	}

	c.printer.Success("Book lent (loan ID: %d)", result.EntityID)

	return nil
}

func (c *Console) returnBook(ctx context.Context) error {
	c.printer.Title("=== Return book ===")

	loanID, err := c.askID("Loan ID")
	if err != nil {
		return err
	}

	result, err := c.handlers.ReturnBook.Handle(ctx, returnbook.BuildCommandReturnedToday(loanID, c.now()))
	if err != nil {
		return err
	}

	returned, ok := result.Event.(core.BookReturned)
	if ok && returned.IsLate() {
		c.printer.Warning("Book returned %d day(s) late. Borrowing is suspended for %d day(s).",
			returned.OverdueDays, returned.SuspensionDays)
		return nil
	}

	c.printer.Success("Book returned on time.")

	return nil
}

func (c *Console) memberActiveLoans(ctx context.Context) error {
	memberID, err := c.askID("Member ID")
	if err != nil {
		return err
	}

	return c.showLoans(ctx, findloans.BuildQueryActiveByMember(memberID))
}

func (c *Console) memberLoanHistory(ctx context.Context) error {
	memberID, err := c.askID("Member ID")
	if err != nil {
		return err
	}

	return c.showLoans(ctx, findloans.BuildQueryHistoryByMember(memberID))
}

func (c *Console) bookLoanHistory(ctx context.Context) error {
	bookID, err := c.askID("Book ID")
	if err != nil {
		return err
	}

	return c.showLoans(ctx, findloans.BuildQueryHistoryByBook(bookID))
}

func (c *Console) showLoans(ctx context.Context, query findloans.Query) error {
	result, err := c.handlers.FindLoans.Handle(ctx, query)
	if err != nil {
		return err
	}

	c.printer.Loans(result.Loans)

	return nil
}

func (c *Console) allActiveLoans(ctx context.Context) error {
	result, err := c.handlers.ActiveLoans.Handle(ctx, activeloans.BuildQuery())
	if err != nil {
		return err
	}

	c.printer.Loans(result.Loans)

	return nil
}

func (c *Console) overdueLoans(ctx context.Context) error {
	result, err := c.handlers.OverdueLoans.Handle(ctx, overdueloans.BuildQuery(c.now()))
	if err != nil {
		return err
	}

	c.printer.OverdueLoans(result)

	return nil
}
