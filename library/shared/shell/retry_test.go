package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

type countingCollector struct {
	counters  map[string]int
	durations map[string]int
}

func newCountingCollector() *countingCollector {
	return &countingCollector{counters: map[string]int{}, durations: map[string]int{}}
}

func (c *countingCollector) RecordDuration(metric string, _ time.Duration, _ map[string]string) {
	c.durations[metric]++
}

func (c *countingCollector) IncrementCounter(metric string, _ map[string]string) {
	c.counters[metric]++
}

func (c *countingCollector) RecordValue(string, float64, map[string]string) {}

func Test_RetryWithExponentialBackoff_Success_NoRetries(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return nil
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn)

	assert.NoError(t, err)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, time.Duration(0), meta.TotalDelay)
	assert.Equal(t, "none", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_RetryOnDatabaseBusy(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		if callCount < 3 {
			return errors.Join(librarystore.ErrDatabaseBusy, errors.New("database is locked"))
		}
		return nil
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Millisecond))

	assert.NoError(t, err)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Greater(t, meta.TotalDelay, time.Duration(0))
	assert.Equal(t, "none", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_NonRetryableError_FailsFast(t *testing.T) {
	ctx := context.Background()
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		return librarystore.ErrBookNotAvailable
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn)

	assert.ErrorIs(t, err, librarystore.ErrBookNotAvailable)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, 1, meta.Attempts)
	assert.Equal(t, "other", meta.LastErrorType)
	assert.False(t, meta.RetriesExhausted)
}

func Test_RetryWithExponentialBackoff_MaxAttemptsReached(t *testing.T) {
	ctx := context.Background()
	callCount := 0
	collector := newCountingCollector()

	fn := func(_ context.Context) error {
		callCount++
		return librarystore.ErrDatabaseBusy
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn,
		WithMaxAttempts(3),
		WithBaseDelay(time.Millisecond),
		WithJitterFactor(0),
		WithMetrics(collector, "LendBook"),
	)

	assert.ErrorIs(t, err, librarystore.ErrDatabaseBusy)
	assert.Equal(t, 3, callCount)
	assert.Equal(t, 3, meta.Attempts)
	assert.Equal(t, "database_busy", meta.LastErrorType)
	assert.True(t, meta.RetriesExhausted)
	assert.Equal(t, 3*time.Millisecond, meta.TotalDelay)

	assert.Equal(t, 2, collector.counters[CommandHandlerRetriesMetric])
	assert.Equal(t, 2, collector.durations[CommandHandlerRetryDelayMetric])
	assert.Equal(t, 1, collector.counters[CommandHandlerMaxRetriesReachedMetric])
}

func Test_RetryWithExponentialBackoff_ContextCanceledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	fn := func(_ context.Context) error {
		callCount++
		cancel()
		return librarystore.ErrDatabaseBusy
	}

	meta, err := RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(time.Second))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
	assert.Equal(t, "context_canceled", meta.LastErrorType)
}

func Test_RetryWithExponentialBackoff_InvalidOptions(t *testing.T) {
	ctx := context.Background()
	fn := func(_ context.Context) error { return nil }

	_, err := RetryWithExponentialBackoff(ctx, fn, WithMaxAttempts(0))
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)

	_, err = RetryWithExponentialBackoff(ctx, fn, WithBaseDelay(-1*time.Second))
	assert.ErrorIs(t, err, ErrNegativeBaseDelay)

	_, err = RetryWithExponentialBackoff(ctx, fn, WithJitterFactor(1.5))
	assert.ErrorIs(t, err, ErrInvalidJitterFactor)

	_, err = RetryWithExponentialBackoff(ctx, fn, WithMetrics(nil, "LendBook"))
	assert.ErrorIs(t, err, ErrNilMetricsCollector)

	_, err = RetryWithExponentialBackoff(ctx, fn, WithMetrics(newCountingCollector(), ""))
	assert.ErrorIs(t, err, ErrEmptyCommandType)
}

func Test_StatusOf(t *testing.T) {
	testCases := []struct {
		description string
		err         error
		expected    string
	}{
		{"no error", nil, StatusSuccess},
		{"canceled", context.Canceled, StatusCanceled},
		{"timeout", context.DeadlineExceeded, StatusTimeout},
		{"busy", librarystore.ErrDatabaseBusy, StatusDatabaseBusy},
		{"other", errors.New("boom"), StatusError},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, StatusOf(tc.err))
		})
	}
}
