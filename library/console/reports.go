package console

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/library/features/query/inventory"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstats"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/popularbooks"
)

func (c *Console) reportsMenu() menu {
	return menu{
		title: "Reports",
		items: []menuItem{
			{"1", "Popular books (top 10)", c.popularBooksReport},
			{"2", "Overdue report", c.overdueLoans},
			{"3", "Inventory", c.inventoryReport},
			{"4", "Member statistics", c.memberStatsReport},
		},
	}
}

func (c *Console) popularBooksReport(ctx context.Context) error {
	result, err := c.handlers.PopularBooks.Handle(ctx, popularbooks.BuildQuery(0))
	if err != nil {
		return err
	}

	c.printer.Title("=== Popular books ===")
	c.printer.PopularBooks(result)

	return nil
}

func (c *Console) inventoryReport(ctx context.Context) error {
	result, err := c.handlers.Inventory.Handle(ctx, inventory.BuildQuery())
	if err != nil {
		return err
	}

	c.printer.Title("=== Inventory ===")
	c.printer.Inventory(result)

	return nil
}

func (c *Console) memberStatsReport(ctx context.Context) error {
	result, err := c.handlers.MemberStats.Handle(ctx, memberstats.BuildQuery(c.now()))
	if err != nil {
		return err
	}

	c.printer.Title("=== Member statistics ===")
	c.printer.MemberStats(result)

	return nil
}
