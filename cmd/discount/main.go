// Command discount prints the discounted price for a customer type.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AntonStoeckl/library-exercises-go/discount"
	"github.com/AntonStoeckl/library-exercises-go/internal/logging"
)

// ErrInvalidPrice is returned when PRICE is not a non-negative number.
var ErrInvalidPrice = errors.New("invalid price")

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(out, errOut io.Writer) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "discount PRICE TYPE",
		Short:        "Print the price after the discount for TYPE (regular, member or vip)",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			logger, err := logging.New("warn", verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			price, err := strconv.ParseFloat(args[0], 64)
			if err != nil || price < 0 {
				return fmt.Errorf("%w: %q", ErrInvalidPrice, args[0])
			}

			discounted := discount.Calculate(price, args[1])
			logger.Debug("discount calculated",
				zap.Float64("price", price),
				zap.String("customer_type", args[1]),
				zap.Float64("discounted", discounted))

			_, err = fmt.Fprintf(out, "%.2f\n", discounted)

			return err
		},
	}

	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log at debug level")

	return cmd
}
