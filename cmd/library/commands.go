package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-exercises-go/library/console"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/activeloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/inventory"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstats"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/popularbooks"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell/config"
)

// ErrUnknownReport is returned for a report name that does not exist.
var ErrUnknownReport = errors.New("unknown report")

var reportNames = []string{"popular", "overdue", "inventory", "members", "active"}

func newRootCommand(in io.Reader, out, errOut io.Writer, now func() time.Time) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "library",
		Short: "Small library management: books, members, loans and reports",
		Long: `library manages the books, members and loans of a small library.

Run without a subcommand to start the interactive menu.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMenu(cmd.Context(), flags, in, out, errOut, now)
		},
	}

	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&flags.driver, "driver", "", "database driver: "+strings.Join(config.SupportedDrivers(), ", "))
	pf.StringVar(&flags.dsn, "dsn", "", "database file (SQLite) or connection string (Postgres)")
	pf.StringVar(&flags.logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level, including every SQL statement")
	pf.BoolVar(&flags.stats, "stats", false, "collect metrics and traces and print the metrics as JSON on exit")

	root.AddCommand(
		&cobra.Command{
			Use:   "menu",
			Short: "Start the interactive menu",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runMenu(cmd.Context(), flags, in, out, errOut, now)
			},
		},
		&cobra.Command{
			Use:   "init",
			Short: "Create the database schema",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runInit(cmd.Context(), flags, out, errOut)
			},
		},
		newReportCommand(flags, out, errOut, now),
	)

	return root
}

func runMenu(ctx context.Context, flags *rootFlags, in io.Reader, out, errOut io.Writer, now func() time.Time) (err error) {
	s, err := openSession(ctx, flags, true)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(context.WithoutCancel(ctx), errOut)) }()

	if err = s.store.CreateSchema(ctx); err != nil {
		return err
	}

	err = console.New(s.handlers, in, out, console.WithClock(now)).Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func runInit(ctx context.Context, flags *rootFlags, out, errOut io.Writer) (err error) {
	s, err := openSession(ctx, flags, false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(context.WithoutCancel(ctx), errOut)) }()

	if err = s.store.CreateSchema(ctx); err != nil {
		return err
	}

	console.NewPrinter(out).Success("Schema ready (%s: %s)", s.cfg.Database.Driver, s.cfg.Database.DSN)

	return nil
}

func newReportCommand(flags *rootFlags, out, errOut io.Writer, now func() time.Time) *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:       "report " + strings.Join(reportNames, "|"),
		Short:     "Print a report",
		Args:      cobra.ExactArgs(1),
		ValidArgs: reportNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), flags, args[0], reportOptions{asJSON: asJSON, limit: limit}, out, errOut, now)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of books in the popular report (0 uses the configured default)")

	return cmd
}

type reportOptions struct {
	asJSON bool
	limit  int
}

func runReport(
	ctx context.Context,
	flags *rootFlags,
	name string,
	opts reportOptions,
	out, errOut io.Writer,
	now func() time.Time,
) (err error) {

	if !slices.Contains(reportNames, name) {
		return fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownReport, name, strings.Join(reportNames, ", "))
	}

	s, err := openSession(ctx, flags, false)
	if err != nil {
		return err
	}
	defer func() { err = errors.Join(err, s.close(context.WithoutCancel(ctx), errOut)) }()

	if err = s.store.CreateSchema(ctx); err != nil {
		return err
	}

	printer := console.NewPrinter(out)
	h := s.handlers

	var result any
	var render func()

	switch name {
	case "popular":
		report, qErr := h.PopularBooks.Handle(ctx, popularbooks.BuildQuery(opts.limit))
		result, err, render = report, qErr, func() { printer.PopularBooks(report) }
	case "overdue":
		report, qErr := h.OverdueLoans.Handle(ctx, overdueloans.BuildQuery(now()))
		result, err, render = report, qErr, func() { printer.OverdueLoans(report) }
	case "inventory":
		report, qErr := h.Inventory.Handle(ctx, inventory.BuildQuery())
		result, err, render = report, qErr, func() { printer.Inventory(report) }
	case "members":
		report, qErr := h.MemberStats.Handle(ctx, memberstats.BuildQuery(now()))
		result, err, render = report, qErr, func() { printer.MemberStats(report) }
	case "active":
		report, qErr := h.ActiveLoans.Handle(ctx, activeloans.BuildQuery())
		result, err, render = report, qErr, func() { printer.Loans(report.Loans) }
	}

	if err != nil {
		return err
	}

	if opts.asJSON {
		return writeJSON(out, result)
	}

	render()

	return nil
}

func writeJSON(out io.Writer, v any) error {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = out.Write(append(data, '\n'))

	return err
}
