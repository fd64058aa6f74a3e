package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const logAttrScope = "scope"

// LogForwarder is a log.LoggerProvider whose loggers hand every OpenTelemetry log record
// to a librarystore.ContextualLogger, keeping the record's context for trace correlation.
type LogForwarder struct {
	embedded.LoggerProvider

	logger librarystore.ContextualLogger
}

// NewLogForwarder creates a LogForwarder writing to logger.
func NewLogForwarder(logger librarystore.ContextualLogger) *LogForwarder {
	return &LogForwarder{logger: logger}
}

// Logger implements log.LoggerProvider.
func (p *LogForwarder) Logger(name string, _ ...log.LoggerOption) log.Logger {
	return &forwardingLogger{scope: name, logger: p.logger}
}

type forwardingLogger struct {
	embedded.Logger

	scope  string
	logger librarystore.ContextualLogger
}

// Emit maps the record severity onto the four logger levels.
func (l *forwardingLogger) Emit(ctx context.Context, record log.Record) {
	args := []any{logAttrScope, l.scope}
	record.WalkAttributes(func(kv log.KeyValue) bool {
		args = append(args, kv.Key, valueOf(kv.Value))
		return true
	})

	msg := record.Body().AsString()
	severity := record.Severity()

	switch {
	case severity == log.SeverityUndefined:
		l.logger.InfoContext(ctx, msg, args...)
	case severity < log.SeverityInfo:
		l.logger.DebugContext(ctx, msg, args...)
	case severity < log.SeverityWarn:
		l.logger.InfoContext(ctx, msg, args...)
	case severity < log.SeverityError:
		l.logger.WarnContext(ctx, msg, args...)
	default:
		l.logger.ErrorContext(ctx, msg, args...)
	}
}

// Enabled implements log.Logger. Level filtering is left to the receiving logger.
func (l *forwardingLogger) Enabled(_ context.Context, _ log.EnabledParameters) bool {
	return true
}

func valueOf(v log.Value) any {
	switch v.Kind() {
	case log.KindString:
		return v.AsString()
	case log.KindInt64:
		return v.AsInt64()
	case log.KindFloat64:
		return v.AsFloat64()
	case log.KindBool:
		return v.AsBool()
	default:
		return v.String()
	}
}

var _ log.LoggerProvider = (*LogForwarder)(nil)
