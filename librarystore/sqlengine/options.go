package sqlengine

import (
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Logger interface for SQL statement logging, operational information, warnings, and error reporting.
type Logger = librarystore.Logger

// MetricsCollector interface for collecting store performance and operational metrics.
type MetricsCollector = librarystore.MetricsCollector

// SpanContext represents an active tracing span.
type SpanContext = librarystore.SpanContext

// TracingCollector interface for collecting tracing information from store operations.
type TracingCollector = librarystore.TracingCollector

// ContextualLogger interface for context-aware logging with trace correlation.
type ContextualLogger = librarystore.ContextualLogger

// Option defines a functional option for configuring Store.
type Option func(*Store) error

// WithDialect sets the SQL dialect the statements are built for.
// Supported are DialectSQLite (default) and DialectPostgres.
func WithDialect(dialect Dialect) Option {
	return func(s *Store) error {
		if !dialect.isSupported() {
			return librarystore.ErrUnsupportedDialect
		}

		s.dialect = dialect

		return nil
	}
}

// WithLogger sets the logger for the Store.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: Operation names, row counts, durations (production-safe)
// Warn level: Non-critical issues like failed rollbacks or row cleanup
// Error level: Critical failures that cause operation failures.
func WithLogger(logger Logger) Option {
	return func(s *Store) error {
		s.logger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Store.
// The collector receives operation durations, row counts, and database errors.
func WithMetrics(collector MetricsCollector) Option {
	return func(s *Store) error {
		s.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Store.
// Every public operation gets its own span carrying the operation name and outcome.
func WithTracing(collector TracingCollector) Option {
	return func(s *Store) error {
		s.tracingCollector = collector
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the Store.
// When set, it is used instead of the plain logger so log records carry the request context.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(s *Store) error {
		s.contextualLogger = logger
		return nil
	}
}
