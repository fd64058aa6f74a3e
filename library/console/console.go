// Package console implements the interactive numbered menu of the library.
//
// The console reads one answer per line from its input, so it can be driven by a terminal
// or by a scripted reader in tests. Errors of single actions are printed and the menu
// continues; closing the input ends the session.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/handlers"
)

var (
	errInputClosed  = errors.New("input closed")
	errInvalidInput = errors.New("invalid input")
)

type menuItem struct {
	key    string
	label  string
	action func(ctx context.Context) error
}

type menu struct {
	title    string
	items    []menuItem
	zeroItem string
}

// Console runs the menu loop against the library handlers.
type Console struct {
	handlers handlers.Handlers
	scanner  *bufio.Scanner
	out      io.Writer
	printer  Printer
	now      func() time.Time
}

// Option configures a Console.
type Option func(*Console)

// WithClock sets the source of "today" for loans, returns and reports.
func WithClock(now func() time.Time) Option {
	return func(c *Console) {
		c.now = now
	}
}

// New creates a Console reading answers from in and writing to out.
func New(h handlers.Handlers, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		handlers: h,
		scanner:  bufio.NewScanner(in),
		out:      out,
		printer:  NewPrinter(out),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Run shows the main menu until the user exits, the input is closed, or ctx is done.
func (c *Console) Run(ctx context.Context) error {
	err := c.loop(ctx, c.mainMenu())
	if errors.Is(err, errInputClosed) {
		return c.scanner.Err()
	}

	return err
}

func (c *Console) mainMenu() menu {
	return menu{
		title:    "Small Library Management",
		zeroItem: "Exit",
		items: []menuItem{
			{"1", "Books", func(ctx context.Context) error { return c.loop(ctx, c.booksMenu()) }},
			{"2", "Members", func(ctx context.Context) error { return c.loop(ctx, c.membersMenu()) }},
			{"3", "Loans", func(ctx context.Context) error { return c.loop(ctx, c.loansMenu()) }},
			{"4", "Reports", func(ctx context.Context) error { return c.loop(ctx, c.reportsMenu()) }},
		},
	}
}

// loop shows m until "0" is chosen. Only a closed input or a done context ends it early.
func (c *Console) loop(ctx context.Context, m menu) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		c.showMenu(m)

		choice, err := c.ask("Choice")
		if err != nil {
			return err
		}

		if choice == "0" {
			return nil
		}

		item, found := findItem(m, choice)
		if !found {
			c.printer.Failure(fmt.Errorf("%w: unknown choice %q", errInvalidInput, choice))
			continue
		}

		err = item.action(ctx)

		switch {
		case err == nil:
		case errors.Is(err, errInputClosed), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		default:
			c.printer.Failure(err)
		}
	}
}

func (c *Console) showMenu(m menu) {
	c.printer.Line("")
	c.printer.Title("===== " + m.title + " =====")

	for _, item := range m.items {
		c.printer.Line("%s. %s", item.key, item.label)
	}

	zeroItem := m.zeroItem
	if zeroItem == "" {
		zeroItem = "Back"
	}

	c.printer.Line("0. %s", zeroItem)
}

func findItem(m menu, key string) (menuItem, bool) {
	for _, item := range m.items {
		if item.key == key {
			return item, true
		}
	}

	return menuItem{}, false
}

// ask prints the prompt and returns the next trimmed input line.
func (c *Console) ask(prompt string) (string, error) {
	_, _ = fmt.Fprintf(c.out, "%s: ", prompt)

	if !c.scanner.Scan() {
		_, _ = fmt.Fprintln(c.out)
		return "", errInputClosed
	}

	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *Console) askID(prompt string) (int64, error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}

	id, err := strconv.ParseInt(answer, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q is not an id", errInvalidInput, answer)
	}

	return id, nil
}

// askInt returns fallback for an empty answer.
func (c *Console) askInt(prompt string, fallback int) (int, error) {
	answer, err := c.ask(prompt)
	if err != nil {
		return 0, err
	}

	if answer == "" {
		return fallback, nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", errInvalidInput, answer)
	}

	return n, nil
}

// askOptional returns nil for an empty answer, meaning "keep the current value".
func (c *Console) askOptional(prompt string) (*string, error) {
	answer, err := c.ask(prompt + " (Enter to keep)")
	if err != nil || answer == "" {
		return nil, err
	}

	return &answer, nil
}

func (c *Console) confirm(prompt string) (bool, error) {
	answer, err := c.ask(prompt + " (y/n)")
	if err != nil {
		return false, err
	}

	return strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes"), nil
}
