package console

import (
	"context"

	"github.com/AntonStoeckl/library-exercises-go/library/features/command/deletemember"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/updatemember"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findmembers"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstatus"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

func (c *Console) membersMenu() menu {
	return menu{
		title: "Members",
		items: []menuItem{
			{"1", "Register member", c.registerMember},
			{"2", "Search members by name", c.searchMembers},
			{"3", "Show member (ID)", c.showMemberStatus},
			{"4", "Update member", c.updateMember},
			{"5", "Delete member", c.deleteMember},
			{"6", "List all members", c.listMembers},
			{"7", "Check overdue status", c.showMemberStatus},
		},
	}
}

func (c *Console) registerMember(ctx context.Context) error {
	c.printer.Title("=== Register member ===")

	var member librarystore.NewMember
	var err error

	if member.Name, err = c.ask("Name"); err != nil {
		return err
	}

	if member.Phone, err = c.ask("Phone"); err != nil {
		return err
	}

	if member.Address, err = c.ask("Address"); err != nil {
		return err
	}

	result, err := c.handlers.RegisterMember.Handle(ctx, registermember.BuildCommand(member, c.now()))
	if err != nil {
		return err
	}

	c.printer.Success("Member registered (member ID: %d)", result.EntityID)

	return nil
}

func (c *Console) searchMembers(ctx context.Context) error {
	name, err := c.ask("Name")
	if err != nil {
		return err
	}

	result, err := c.handlers.FindMembers.Handle(ctx, findmembers.BuildQueryByName(name, 0))
	if err != nil {
		return err
	}

	c.printer.Members(result.Members)

	return nil
}

func (c *Console) showMemberStatus(ctx context.Context) error {
	memberID, err := c.askID("Member ID")
	if err != nil {
		return err
	}

	status, err := c.handlers.MemberStatus.Handle(ctx, memberstatus.BuildQuery(memberID, c.now()))
	if err != nil {
		return err
	}

	c.printer.MemberStatus(status)

	return nil
}

func (c *Console) updateMember(ctx context.Context) error {
	c.printer.Title("=== Update member ===")

	memberID, err := c.askID("Member ID")
	if err != nil {
		return err
	}

	var patch librarystore.MemberPatch

	if patch.Name, err = c.askOptional("New name"); err != nil {
		return err
	}

	if patch.Phone, err = c.askOptional("New phone"); err != nil {
		return err
	}

	if patch.Address, err = c.askOptional("New address"); err != nil {
		return err
	}

	result, err := c.handlers.UpdateMember.Handle(ctx, updatemember.BuildCommand(memberID, patch, c.now()))
	if err != nil {
		return err
	}

	if result.Idempotent {
		c.printer.Line("Nothing changed.")
		return nil
	}

	c.printer.Success("Member %d updated.", memberID)

	return nil
}

func (c *Console) deleteMember(ctx context.Context) error {
	c.printer.Title("=== Delete member ===")

	memberID, err := c.askID("Member ID")
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

	if _, err := c.handlers.DeleteMember.Handle(ctx, deletemember.BuildCommand(memberID, c.now())); err != nil {
		return err
	}

	c.printer.Success("Member %d deleted.", memberID)

	return nil
}

func (c *Console) listMembers(ctx context.Context) error {
	result, err := c.handlers.FindMembers.Handle(ctx, findmembers.BuildQueryAll())
	if err != nil {
		return err
	}

	c.printer.Members(result.Members)
	c.printer.Line("Total members: %d", result.Total)

	return nil
}
