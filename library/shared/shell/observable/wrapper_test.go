package observable_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell/observable"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper" //nolint:revive
)

type fakeCommand struct{}

func (fakeCommand) CommandType() string { return "FakeCommand" }

type fakeCommandHandler struct {
	result shell.HandlerResult
	err    error
	calls  int
}

func (h *fakeCommandHandler) Handle(_ context.Context, _ fakeCommand) (shell.HandlerResult, error) {
	h.calls++
	return h.result, h.err
}

type fakeQuery struct{}

func (fakeQuery) QueryType() string { return "FakeQuery" }

type fakeResult struct {
	rows []string
}

func (r fakeResult) ResultCount() int { return len(r.rows) }

type fakeQueryHandler struct {
	result fakeResult
	err    error
}

func (h fakeQueryHandler) Handle(_ context.Context, _ fakeQuery) (fakeResult, error) {
	return h.result, h.err
}

func Test_CommandWrapper_Handle_Success(t *testing.T) {
	// setup
	logHandler := NewTestLogHandler(false)
	metrics := NewTestMetricsCollector()
	tracing := NewTestTracingCollector()
	event := core.BuildBookLent(1, 2, "2025-01-01", "2025-01-15", time.Now())
	handler := &fakeCommandHandler{result: shell.HandlerResult{RetryAttempts: 1, EntityID: 5, Event: event}}

	wrapper, err := observable.NewCommandWrapper[fakeCommand](
		handler,
		observable.WithCommandMetrics[fakeCommand](metrics),
		observable.WithCommandTracing[fakeCommand](tracing),
		observable.WithCommandContextualLogging[fakeCommand](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), fakeCommand{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, int64(5), result.EntityID)
	assert.Equal(t, 1, handler.calls)

	labels := map[string]string{shell.LogAttrCommandType: "FakeCommand", shell.LogAttrStatus: shell.StatusSuccess}
	assert.True(t, metrics.HasDurationRecord(shell.CommandHandlerDurationMetric, labels))
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerCallsMetric, labels))
	assert.False(t, metrics.HasCounterRecord(shell.CommandHandlerRetriesMetric, nil))

	span, found := tracing.FindSpan(shell.SpanNameCommandHandle)
	assert.True(t, found)
	assert.True(t, span.Finished)
	assert.Equal(t, shell.StatusSuccess, span.Status)

	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandStarted).
		WithAttr(shell.LogAttrCommandType, "FakeCommand").Assert())
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgCommandCompleted).
		WithAttr(shell.LogAttrEventType, core.BookLentEventType).
		WithAttr(shell.LogAttrEntityID, "5").
		WithDurationMS().Assert())
}

func Test_CommandWrapper_Handle_Idempotent(t *testing.T) {
	// setup
	metrics := NewTestMetricsCollector()
	handler := &fakeCommandHandler{result: shell.HandlerResult{Idempotent: true, RetryAttempts: 1}}

	wrapper, err := observable.NewCommandWrapper[fakeCommand](handler, observable.WithCommandMetrics[fakeCommand](metrics))
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), fakeCommand{})

	// assert
	assert.NoError(t, err)
	assert.True(t, result.Idempotent)
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerIdempotentMetric,
		map[string]string{shell.LogAttrStatus: shell.StatusIdempotent}))
}

func Test_CommandWrapper_Handle_Rejected_LogsWarning(t *testing.T) {
	// setup
	logHandler := NewTestLogHandler(false)
	metrics := NewTestMetricsCollector()
	event := core.BuildLendingBookFailed(1, 2, "book is not available", time.Now())
	rejection := core.RejectionError(event, librarystore.ErrBookNotAvailable)
	handler := &fakeCommandHandler{result: shell.HandlerResult{RetryAttempts: 1, Event: event}, err: rejection}

	wrapper, err := observable.NewCommandWrapper[fakeCommand](
		handler,
		observable.WithCommandMetrics[fakeCommand](metrics),
		observable.WithCommandLogging[fakeCommand](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), fakeCommand{})

	// assert
	assert.ErrorIs(t, err, librarystore.ErrBookNotAvailable)
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerRejectedMetric,
		map[string]string{shell.LogAttrStatus: shell.StatusRejected}))
	assert.True(t, logHandler.HasWarnLogWithMessage(shell.LogMsgCommandRejected).
		WithAttr(shell.LogAttrEventType, core.LendingBookFailedEventType).Assert())
	assert.Equal(t, 0, logHandler.CountWithLevel(slog.LevelError))
}

func Test_CommandWrapper_Handle_InfrastructureError_LogsErrorAndRetries(t *testing.T) {
	// setup
	logHandler := NewTestLogHandler(false)
	metrics := NewTestMetricsCollector()
	handler := &fakeCommandHandler{
		result: shell.HandlerResult{RetryAttempts: 6, LastErrorType: "database_busy", RetriesExhausted: true},
		err:    librarystore.ErrDatabaseBusy,
	}

	wrapper, err := observable.NewCommandWrapper[fakeCommand](
		handler,
		observable.WithCommandMetrics[fakeCommand](metrics),
		observable.WithCommandContextualLogging[fakeCommand](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), fakeCommand{})

	// assert
	assert.ErrorIs(t, err, librarystore.ErrDatabaseBusy)
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerCallsMetric,
		map[string]string{shell.LogAttrStatus: shell.StatusDatabaseBusy}))
	assert.True(t, metrics.HasCounterRecord(shell.CommandHandlerRetriesMetric,
		map[string]string{shell.LabelAttemptNumber: "5", shell.LabelErrorType: "database_busy"}))
	assert.True(t, logHandler.HasErrorLogWithMessage(shell.LogMsgCommandFailed).Assert())
}

func Test_CommandWrapper_Handle_WithoutObservability(t *testing.T) {
	// setup
	handler := &fakeCommandHandler{err: errors.New("boom")}

	wrapper, err := observable.NewCommandWrapper[fakeCommand](handler)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), fakeCommand{})

	// assert
	assert.EqualError(t, err, "boom")
}

func Test_QueryWrapper_Handle_Success(t *testing.T) {
	// setup
	logHandler := NewTestLogHandler(false)
	metrics := NewTestMetricsCollector()
	tracing := NewTestTracingCollector()
	handler := fakeQueryHandler{result: fakeResult{rows: []string{"a", "b"}}}

	wrapper, err := observable.NewQueryWrapper[fakeQuery, fakeResult](
		handler,
		observable.WithQueryMetrics[fakeQuery, fakeResult](metrics),
		observable.WithQueryTracing[fakeQuery, fakeResult](tracing),
		observable.WithQueryLogging[fakeQuery, fakeResult](slog.New(logHandler)),
	)
	require.NoError(t, err)

	// act
	result, err := wrapper.Handle(context.Background(), fakeQuery{})

	// assert
	assert.NoError(t, err)
	assert.Equal(t, 2, result.ResultCount())
	assert.True(t, metrics.HasDurationRecord(shell.QueryHandlerDurationMetric,
		map[string]string{shell.LogAttrQueryType: "FakeQuery", shell.LogAttrStatus: shell.StatusSuccess}))
	assert.True(t, logHandler.HasInfoLogWithMessage(shell.LogMsgQueryCompleted).
		WithAttr(shell.LogAttrResultCount, "2").Assert())

	span, found := tracing.FindSpan(shell.SpanNameQueryHandle)
	assert.True(t, found)
	assert.Equal(t, "FakeQuery", span.StartAttributes[shell.LogAttrQueryType])
}

func Test_QueryWrapper_Handle_Canceled(t *testing.T) {
	// setup
	metrics := NewTestMetricsCollector()
	handler := fakeQueryHandler{err: context.Canceled}

	wrapper, err := observable.NewQueryWrapper[fakeQuery, fakeResult](
		handler,
		observable.WithQueryMetrics[fakeQuery, fakeResult](metrics),
	)
	require.NoError(t, err)

	// act
	_, err = wrapper.Handle(context.Background(), fakeQuery{})

	// assert
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, metrics.HasCounterRecord(shell.QueryHandlerCanceledMetric,
		map[string]string{shell.LogAttrStatus: shell.StatusCanceled}))
}
