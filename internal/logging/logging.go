// Package logging builds the zap loggers of the binaries and adapts them to the
// Logger and ContextualLogger interfaces the library packages accept.
package logging

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// ErrInvalidLevel is returned for a level name zap does not know.
var ErrInvalidLevel = errors.New("invalid log level")

const (
	logAttrTraceID = "trace_id"
	logAttrSpanID  = "span_id"
)

// New builds a production zap logger that writes JSON to outputPaths, stderr when none are given.
// verbose forces the debug level regardless of level.
func New(level string, verbose bool, outputPaths ...string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if len(outputPaths) > 0 {
		config.OutputPaths = outputPaths
	}

	zapLevel, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	if verbose {
		zapLevel = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(zapLevel)

	return config.Build()
}

func parseLevel(level string) (zapcore.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zapcore.InfoLevel, nil
	}

	zapLevel, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zapcore.InfoLevel, errors.Join(ErrInvalidLevel, err)
	}

	return zapLevel, nil
}

// Adapter exposes a zap logger through the slog-style key/value logging interfaces.
type Adapter struct {
	sugar *zap.SugaredLogger
}

// NewAdapter wraps logger.
func NewAdapter(logger *zap.Logger) *Adapter {
	return &Adapter{sugar: logger.Sugar()}
}

func (a *Adapter) Debug(msg string, args ...any) { a.sugar.Debugw(msg, args...) }
func (a *Adapter) Info(msg string, args ...any)  { a.sugar.Infow(msg, args...) }
func (a *Adapter) Warn(msg string, args ...any)  { a.sugar.Warnw(msg, args...) }
func (a *Adapter) Error(msg string, args ...any) { a.sugar.Errorw(msg, args...) }

// DebugContext logs at debug level with the trace correlation of ctx.
func (a *Adapter) DebugContext(ctx context.Context, msg string, args ...any) {
	a.sugar.Debugw(msg, withTrace(ctx, args)...)
}

// InfoContext logs at info level with the trace correlation of ctx.
func (a *Adapter) InfoContext(ctx context.Context, msg string, args ...any) {
	a.sugar.Infow(msg, withTrace(ctx, args)...)
}

// WarnContext logs at warn level with the trace correlation of ctx.
func (a *Adapter) WarnContext(ctx context.Context, msg string, args ...any) {
	a.sugar.Warnw(msg, withTrace(ctx, args)...)
}

// ErrorContext logs at error level with the trace correlation of ctx.
func (a *Adapter) ErrorContext(ctx context.Context, msg string, args ...any) {
	a.sugar.Errorw(msg, withTrace(ctx, args)...)
}

func withTrace(ctx context.Context, args []any) []any {
	spanCtx := trace.SpanContextFromContext(ctx)
	if !spanCtx.IsValid() {
		return args
	}

	return append(args,
		logAttrTraceID, spanCtx.TraceID().String(),
		logAttrSpanID, spanCtx.SpanID().String())
}

var (
	_ librarystore.Logger           = (*Adapter)(nil)
	_ librarystore.ContextualLogger = (*Adapter)(nil)
)
