// Command usersearch looks up users by exact name in the MySQL database configured
// through DB_SERVER, DB_USER, DB_PASSWORD and DB_NAME.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-exercises-go/internal/logging"
	"github.com/AntonStoeckl/library-exercises-go/usersearch"
)

const connectTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdout, os.Stderr, os.LookupEnv).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

func newRootCommand(out, errOut io.Writer, lookupEnv func(string) (string, bool)) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "usersearch TERM",
		Short:        "Find users whose name equals TERM",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			term := args[0]

			if err := usersearch.ValidateSearchTerm(term); err != nil {
				return err
			}

			cfg, err := usersearch.LoadConfigWithEnv(lookupEnv)
			if err != nil {
				return err
			}

			logger, err := logging.New("warn", verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), connectTimeout)
			defer cancel()

			db, err := usersearch.Open(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			names, err := usersearch.NewSearcher(db, usersearch.WithLogger(logging.NewAdapter(logger))).Search(cmd.Context(), term)
			if err != nil {
				return err
			}

			return usersearch.PrintResults(out, term, names)
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every executed statement")

	return cmd
}
