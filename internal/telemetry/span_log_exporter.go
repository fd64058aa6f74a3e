package telemetry

import (
	"context"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	logMsgSpanFinished = "span finished"

	logAttrSpan       = "span"
	logAttrTraceID    = "trace_id"
	logAttrSpanID     = "span_id"
	logAttrParentID   = "parent_span_id"
	logAttrStatus     = "status"
	logAttrDurationMS = "duration_ms"
)

// SpanLogExporter is a sdktrace.SpanExporter that writes each finished span as a debug log record.
type SpanLogExporter struct {
	logger librarystore.Logger

	mu      sync.Mutex
	stopped bool
}

// NewSpanLogExporter creates a SpanLogExporter writing to logger.
func NewSpanLogExporter(logger librarystore.Logger) *SpanLogExporter {
	return &SpanLogExporter{logger: logger}
}

// ExportSpans implements sdktrace.SpanExporter.
func (e *SpanLogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.stopped {
		return nil
	}

	for _, span := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}

		args := []any{
			logAttrSpan, span.Name(),
			logAttrTraceID, span.SpanContext().TraceID().String(),
			logAttrSpanID, span.SpanContext().SpanID().String(),
			logAttrStatus, span.Status().Code.String(),
			logAttrDurationMS, float64(span.EndTime().Sub(span.StartTime()).Microseconds()) / 1000.0,
		}
		if span.Parent().IsValid() {
			args = append(args, logAttrParentID, span.Parent().SpanID().String())
		}
		for _, attr := range span.Attributes() {
			args = append(args, string(attr.Key), attr.Value.Emit())
		}

		e.logger.Debug(logMsgSpanFinished, args...)
	}

	return nil
}

// Shutdown implements sdktrace.SpanExporter. Later exports are dropped.
func (e *SpanLogExporter) Shutdown(_ context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopped = true

	return nil
}

var _ sdktrace.SpanExporter = (*SpanLogExporter)(nil)
