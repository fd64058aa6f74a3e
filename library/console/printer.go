package console

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/AntonStoeckl/library-exercises-go/library/features/query/inventory"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstats"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstatus"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/popularbooks"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

var (
	accentColor  = lipgloss.Color("#2196F3")
	successColor = lipgloss.Color("#8BC34A")
	warningColor = lipgloss.Color("#FFC107")
	failureColor = lipgloss.Color("#E53935")
	mutedColor   = lipgloss.Color("#9E9E9E")
)

type styles struct {
	title   lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

func newStyles(renderer *lipgloss.Renderer) styles {
	return styles{
		title:   renderer.NewStyle().Bold(true).Foreground(accentColor),
		success: renderer.NewStyle().Foreground(successColor),
		warning: renderer.NewStyle().Foreground(warningColor),
		failure: renderer.NewStyle().Bold(true).Foreground(failureColor),
		muted:   renderer.NewStyle().Foreground(mutedColor),
		header:  renderer.NewStyle().Bold(true).Padding(0, 1),
		cell:    renderer.NewStyle().Padding(0, 1),
		border:  renderer.NewStyle().Foreground(mutedColor),
	}
}

// Printer renders library data as styled text. Colors are dropped when out is not a terminal.
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a Printer writing to out.
func NewPrinter(out io.Writer) Printer {
	return Printer{
		out:    out,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

// Title prints a section heading.
func (p Printer) Title(text string) {
	p.println(p.styles.title.Render(text))
}

// Line prints plain text.
func (p Printer) Line(format string, args ...any) {
	p.println(fmt.Sprintf(format, args...))
}

// Success prints a confirmation.
func (p Printer) Success(format string, args ...any) {
	p.println(p.styles.success.Render(fmt.Sprintf(format, args...)))
}

// Warning prints a warning.
func (p Printer) Warning(format string, args ...any) {
	p.println(p.styles.warning.Render(fmt.Sprintf(format, args...)))
}

// Failure prints an error.
func (p Printer) Failure(err error) {
	p.println(p.styles.failure.Render("Error: " + err.Error()))
}

// Books prints a book table.
func (p Printer) Books(books []librarystore.Book) {
	if len(books) == 0 {
		p.empty("No books found.")
		return
	}

	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{
			itoa64(b.ID), b.Title, b.Author, b.Publisher, yearOf(b.PublicationYear), b.ISBN, b.Genre,
			fmt.Sprintf("%d/%d", b.Available, b.Quantity),
		})
	}

	p.table([]string{"ID", "Title", "Author", "Publisher", "Year", "ISBN", "Genre", "Available"}, rows)
	p.Line("%d book(s)", len(books))
}

// Members prints a member table.
func (p Printer) Members(members []librarystore.Member) {
	if len(members) == 0 {
		p.empty("No members found.")
		return
	}

	rows := make([][]string, 0, len(members))
	for _, m := range members {
		rows = append(rows, []string{itoa64(m.ID), m.Name, m.Phone, m.Address, m.RegistrationDate})
	}

	p.table([]string{"ID", "Name", "Phone", "Address", "Registered"}, rows)
}

// MemberStatus prints a member with its overdue status.
func (p Printer) MemberStatus(status memberstatus.Status) {
	m := status.Member
	p.Line("Member ID:    %d", m.ID)
	p.Line("Name:         %s", m.Name)
	p.Line("Phone:        %s", m.Phone)
	p.Line("Address:      %s", m.Address)
	p.Line("Registered:   %s", m.RegistrationDate)
	p.Line("Active loans: %d", len(status.ActiveLoans))

	if status.CanBorrow {
		p.Success("No overdue loans as of %s.", status.AsOf)
		return
	}

	p.Warning("Overdue by %d day(s), borrowing suspended for %d day(s).", status.OverdueDays, status.SuspensionDays)
}

// Loans prints a loan table.
func (p Printer) Loans(loans []librarystore.LoanRecord) {
	if len(loans) == 0 {
		p.empty("No loans found.")
		return
	}

	rows := make([][]string, 0, len(loans))
	for _, l := range loans {
		state := "active"
		if l.IsReturned {
			state = "returned " + l.ReturnDate
			if l.OverdueDays > 0 {
				state += fmt.Sprintf(" (%d days late)", l.OverdueDays)
			}
		}

		rows = append(rows, []string{
			itoa64(l.ID), itoa64(l.BookID), l.BookTitle, itoa64(l.MemberID), l.MemberName, l.LoanDate, l.DueDate, state,
		})
	}

	p.table([]string{"Loan", "Book", "Title", "Member", "Name", "Loaned", "Due", "State"}, rows)
	p.Line("%d loan(s)", len(loans))
}

// OverdueLoans prints the overdue report.
func (p Printer) OverdueLoans(report overdueloans.OverdueLoans) {
	p.Line("Overdue as of %s", report.AsOf)

	if len(report.Loans) == 0 {
		p.empty("No overdue loans.")
		return
	}

	rows := make([][]string, 0, len(report.Loans))
	for _, l := range report.Loans {
		rows = append(rows, []string{
			itoa64(l.ID), l.BookTitle, l.MemberName, l.DueDate,
			strconv.Itoa(l.DaysOverdue), strconv.Itoa(l.SuspensionDays),
		})
	}

	p.table([]string{"Loan", "Title", "Member", "Due", "Days overdue", "Suspension days"}, rows)
}

// PopularBooks prints the popularity ranking.
func (p Printer) PopularBooks(ranking popularbooks.PopularBooks) {
	if len(ranking.Books) == 0 {
		p.empty("No books found.")
		return
	}

	rows := make([][]string, 0, len(ranking.Books))
	for i, b := range ranking.Books {
		rows = append(rows, []string{strconv.Itoa(i + 1), itoa64(b.BookID), b.Title, b.Author, strconv.Itoa(b.LoanCount)})
	}

	p.table([]string{"Rank", "ID", "Title", "Author", "Loans"}, rows)
}

// Inventory prints the stock of every book and the totals.
func (p Printer) Inventory(report inventory.Inventory) {
	if len(report.Books) == 0 {
		p.empty("No books found.")
		return
	}

	rows := make([][]string, 0, len(report.Books))
	for _, b := range report.Books {
		rows = append(rows, []string{
			itoa64(b.ID), b.Title, strconv.Itoa(b.Quantity), strconv.Itoa(b.Available), strconv.Itoa(b.Quantity - b.Available),
		})
	}

	p.table([]string{"ID", "Title", "Total", "Available", "Lent"}, rows)
	p.Line("Copies: %d total, %d available, %d lent", report.TotalCopies, report.AvailableCopies, report.LentCopies)
}

// MemberStats prints the member statistics.
func (p Printer) MemberStats(stats memberstats.MemberStats) {
	p.Line("Members total:        %d", stats.TotalMembers)
	p.Line("Members with overdue: %d (as of %s)", stats.MembersWithOverdue, stats.AsOf)
}

func (p Printer) table(headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(p.styles.border).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return p.styles.header
			}

			return p.styles.cell
		}).
		Headers(headers...).
		Rows(rows...)

	p.println(t.String())
}

func (p Printer) empty(text string) {
	p.println(p.styles.muted.Render(text))
}

func (p Printer) println(text string) {
	_, _ = fmt.Fprintln(p.out, text)
}

func itoa64(n int64) string {
	return strconv.FormatInt(n, 10)
}

func yearOf(year int) string {
	if year <= 0 {
		return "-"
	}

	return strconv.Itoa(year)
}
