// Command urltools validates, formats or shortens URLs given as arguments or read from stdin.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AntonStoeckl/library-exercises-go/internal/logging"
	"github.com/AntonStoeckl/library-exercises-go/urltools"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1) //nolint:gocritic
	}
}

type flags struct {
	verbose     bool
	asJSON      bool
	concurrency int
	length      int
}

// result is one line of the JSON output.
type result struct {
	URL    string `json:"url"`
	Result string `json:"result"`
}

func newRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:          "urltools",
		Short:        "Validate, format or shorten URLs",
		SilenceUsage: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "log at debug level")
	root.PersistentFlags().BoolVar(&f.asJSON, "json", false, "print the results as JSON")
	root.PersistentFlags().IntVar(&f.concurrency, "concurrency", 4, "number of URLs processed in parallel")

	shorten := newActionCommand("shorten", "Cut URLs to --length characters followed by ...", urltools.ActionShorten, f, in, out)
	shorten.Flags().IntVar(&f.length, "length", urltools.DefaultShortenLength, "maximum length before the ...")

	root.AddCommand(
		newActionCommand("validate", "Print 1 for valid and 0 for invalid URLs", urltools.ActionCheckValid, f, in, out),
		newActionCommand("format", "Prepend https:// to URLs without http(s) scheme", urltools.ActionFormat, f, in, out),
		shorten,
	)

	return root
}

func newActionCommand(name, short string, action urltools.Action, f *flags, in io.Reader, out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [URL...]",
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New("warn", f.verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			urls := args
			if len(urls) == 0 {
				if urls, err = readLines(in); err != nil {
					return err
				}
			}

			opts := []urltools.BatchOption{urltools.WithConcurrency(f.concurrency)}
			if action == urltools.ActionShorten {
				opts = append(opts, urltools.WithShortenLength(f.length))
			}

			results, err := urltools.ProcessBatch(cmd.Context(), urls, action, opts...)
			if err != nil {
				return err
			}
			logger.Debug("urls processed", zap.String("action", string(action)), zap.Int("count", len(results)))

			return write(out, urls, results, f.asJSON)
		},
	}
}

func readLines(in io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}

	return lines, scanner.Err()
}

func write(out io.Writer, urls, results []string, asJSON bool) error {
	if asJSON {
		rows := make([]result, len(urls))
		for i := range urls {
			rows[i] = result{URL: urls[i], Result: results[i]}
		}

		data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		_, err = out.Write(append(data, '\n'))

		return err
	}

	for _, r := range results {
		if _, err := fmt.Fprintln(out, r); err != nil {
			return err
		}
	}

	return nil
}
