// Command rpsls plays Rock-Paper-Scissors-Lizard-Spock against the computer.
package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AntonStoeckl/library-exercises-go/internal/logging"
	"github.com/AntonStoeckl/library-exercises-go/rpsls"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	var seed uint64
	var verbose bool

	cmd := &cobra.Command{
		Use:          "rpsls",
		Short:        "Play Rock-Paper-Scissors-Lizard-Spock against the computer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.New("warn", verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			var opts []rpsls.Option
			if cmd.Flags().Changed("seed") {
				opts = append(opts, rpsls.WithSeed(seed))
			}

			score, err := rpsls.NewGame(in, out, opts...).Play(cmd.Context())
			logger.Debug("game finished",
				zap.Int("wins", score.Wins),
				zap.Int("losses", score.Losses),
				zap.Int("ties", score.Ties),
				zap.Error(err))

			return err
		},
	}

	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for a deterministic computer")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	return cmd
}
