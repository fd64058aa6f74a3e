package sqlengine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	metricOperationDuration = "librarystore_operation_duration_seconds"
	metricRowsProcessed     = "librarystore_rows_processed"
	metricDatabaseErrors    = "librarystore_database_errors_total"

	spanNamePrefix = "librarystore."

	spanAttrOperation  = "operation"
	spanAttrRowCount   = "row_count"
	spanAttrDurationMS = "duration_ms"
	spanAttrErrorType  = "error_type"
	spanAttrDialect    = "db.dialect"

	labelStatus   = "status"
	statusSuccess = "success"
	statusError   = "error"
)

// operationObserver bundles tracing, metrics, and logging for one public store operation.
type operationObserver struct {
	store     Store
	ctx       context.Context
	operation string
	span      SpanContext
	start     time.Time
}

// observed runs fn as the named operation and records its outcome.
// fn returns the number of rows it read or wrote.
func (s Store) observed(ctx context.Context, operation string, fn func(ctx context.Context) (int, error)) error {
	observer, ctx := s.startOperation(ctx, operation)

	rowCount, err := fn(ctx)
	if err != nil {
		observer.finishError(err)
		return err
	}

	observer.finishSuccess(rowCount)

	return nil
}

// startOperation opens the tracing span and starts the clock for an operation.
func (s Store) startOperation(ctx context.Context, operation string) (*operationObserver, context.Context) {
	var span SpanContext

	if s.tracingCollector != nil {
		ctx, span = s.tracingCollector.StartSpan(ctx, spanNamePrefix+operation, map[string]string{
			spanAttrOperation: operation,
			spanAttrDialect:   string(s.dialect),
		})
	}

	return &operationObserver{
		store:     s,
		ctx:       ctx,
		operation: operation,
		span:      span,
		start:     time.Now(),
	}, ctx
}

// finishSuccess records metrics, finishes the span, and logs the completed operation.
func (o *operationObserver) finishSuccess(rowCount int) {
	duration := time.Since(o.start)

	o.store.recordDurationMetricsContext(o.ctx, duration, o.operation, statusSuccess)
	o.store.recordValueMetricsContext(o.ctx, float64(rowCount), o.operation, statusSuccess)

	if o.span != nil {
		o.span.SetStatus(statusSuccess)
		o.span.AddAttribute(spanAttrDurationMS, formatDurationMS(duration))
		o.store.finishTraceSpan(o.span, statusSuccess, map[string]string{
			spanAttrRowCount: fmt.Sprintf("%d", rowCount),
		})
	}

	o.store.logOperation(o.ctx, o.operation,
		logAttrRowCount, rowCount,
		logAttrDurationMS, toMilliseconds(duration))
}

// finishError records error metrics and finishes the span with the error type.
func (o *operationObserver) finishError(err error) {
	duration := time.Since(o.start)
	errorType := errorTypeOf(err)

	o.store.recordDurationMetricsContext(o.ctx, duration, o.operation, statusError)
	o.store.recordErrorMetricsContext(o.ctx, o.operation, errorType)

	if o.span != nil {
		o.span.SetStatus(statusError)
		o.span.AddAttribute(spanAttrErrorType, errorType)
		o.store.finishTraceSpan(o.span, statusError, map[string]string{
			spanAttrErrorType:  errorType,
			spanAttrDurationMS: formatDurationMS(duration),
		})
	}
}

// finishTraceSpan finishes a tracing span if the tracing collector is configured.
func (s Store) finishTraceSpan(spanCtx SpanContext, status string, attrs map[string]string) {
	if s.tracingCollector != nil && spanCtx != nil {
		s.tracingCollector.FinishSpan(spanCtx, status, attrs)
	}
}

// recordDurationMetricsContext records duration metrics with context if the collector supports it.
func (s Store) recordDurationMetricsContext(ctx context.Context, duration time.Duration, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricOperationDuration, duration, labels)
	} else {
		s.metricsCollector.RecordDuration(metricOperationDuration, duration, labels)
	}
}

// recordValueMetricsContext records the processed row count with context if the collector supports it.
func (s Store) recordValueMetricsContext(ctx context.Context, value float64, operation, status string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       status,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricRowsProcessed, value, labels)
	} else {
		s.metricsCollector.RecordValue(metricRowsProcessed, value, labels)
	}
}

// recordErrorMetricsContext counts failed operations by error type.
func (s Store) recordErrorMetricsContext(ctx context.Context, operation, errorType string) {
	if s.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		labelStatus:       statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := s.metricsCollector.(librarystore.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		s.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// logQueryWithDuration logs SQL statements with execution time at debug level.
func (s Store) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if s.contextualLogger != nil {
		s.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

// logOperation logs operational information at info level.
func (s Store) logOperation(ctx context.Context, action string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
		return
	}

	if s.logger != nil {
		s.logger.Info(logMsgOperation+action, args...)
	}
}

// logWarnContext logs non-critical problems.
func (s Store) logWarnContext(ctx context.Context, message string, args ...any) {
	if s.contextualLogger != nil {
		s.contextualLogger.WarnContext(ctx, message, args...)
		return
	}

	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logErrorContext logs error information at the error level.
func (s Store) logErrorContext(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if s.contextualLogger != nil {
		s.contextualLogger.ErrorContext(ctx, message, allArgs...)
		return
	}

	if s.logger != nil {
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// formatDurationMS formats a duration for span attributes.
func formatDurationMS(d time.Duration) string {
	return fmt.Sprintf("%.2f", toMilliseconds(d))
}
