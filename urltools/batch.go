package urltools

import (
	"context"

	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 4

type batchConfig struct {
	concurrency   int
	shortenLength int
}

// BatchOption configures ProcessBatch.
type BatchOption func(*batchConfig)

// WithConcurrency limits the number of URLs processed at the same time. Values below 1 are ignored.
func WithConcurrency(n int) BatchOption {
	return func(c *batchConfig) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithShortenLength sets the length used by the shorten action.
func WithShortenLength(n int) BatchOption {
	return func(c *batchConfig) {
		c.shortenLength = n
	}
}

// ProcessBatch applies action to every URL on a bounded set of goroutines.
// Results keep the input order. It stops early and returns the context error when ctx is done.
func ProcessBatch(ctx context.Context, urls []string, action Action, opts ...BatchOption) ([]string, error) {
	cfg := batchConfig{concurrency: defaultConcurrency, shortenLength: DefaultShortenLength}
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(urls) == 0 {
		return nil, ErrEmptyURLList
	}

	apply, err := actionFunc(action, cfg.shortenLength)
	if err != nil {
		return nil, err
	}

	results := make([]string, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.concurrency)

	for i, url := range urls {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = apply(url)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}
