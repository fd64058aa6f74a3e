package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-exercises-go/librarystore/oteladapters"
)

func newTracedCollector() (*oteladapters.TracingCollector, *tracetest.InMemoryExporter) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	return oteladapters.NewTracingCollector(provider.Tracer("test")), exporter
}

func Test_TracingCollector_StartAndFinishSpan_RecordsAttributes(t *testing.T) {
	// setup
	collector, exporter := newTracedCollector()

	// act
	ctx, spanCtx := collector.StartSpan(context.Background(), "librarystore.lend_book", map[string]string{
		"operation":  "lend_book",
		"db.dialect": "sqlite3",
	})
	spanCtx.AddAttribute("duration_ms", "1.25")
	collector.FinishSpan(spanCtx, "success", map[string]string{"row_count": "1"})

	// assert
	assert.True(t, trace.SpanContextFromContext(ctx).IsValid())

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "librarystore.lend_book", span.Name)
	assert.Equal(t, codes.Ok, span.Status.Code)
	assertSpanAttribute(t, span, "operation", "lend_book")
	assertSpanAttribute(t, span, "db.dialect", "sqlite3")
	assertSpanAttribute(t, span, "duration_ms", "1.25")
	assertSpanAttribute(t, span, "row_count", "1")
}

func Test_TracingCollector_FinishSpan_MapsStatus(t *testing.T) {
	testCases := []struct {
		status       string
		expectedCode codes.Code
	}{
		{"success", codes.Ok},
		{"idempotent", codes.Ok},
		{"rejected", codes.Ok},
		{"error", codes.Error},
		{"canceled", codes.Error},
		{"timeout", codes.Error},
		{"database_busy", codes.Error},
		{"something_else", codes.Unset},
	}

	for _, tc := range testCases {
		t.Run(tc.status, func(t *testing.T) {
			// setup
			collector, exporter := newTracedCollector()

			// act
			_, spanCtx := collector.StartSpan(context.Background(), "op", nil)
			collector.FinishSpan(spanCtx, tc.status, nil)

			// assert
			spans := exporter.GetSpans()
			require.Len(t, spans, 1)
			assert.Equal(t, tc.expectedCode, spans[0].Status.Code)
		})
	}
}

func Test_TracingCollector_NestedSpans_ShareTrace(t *testing.T) {
	// setup
	collector, exporter := newTracedCollector()

	// act
	ctx, parent := collector.StartSpan(context.Background(), "commandhandler.handle", nil)
	_, child := collector.StartSpan(ctx, "librarystore.lend_book", nil)
	collector.FinishSpan(child, "success", nil)
	collector.FinishSpan(parent, "success", nil)

	// assert
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, spans[1].SpanContext.TraceID(), spans[0].SpanContext.TraceID())
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}

func Test_TracingCollector_FinishSpan_IgnoresForeignSpanContext(t *testing.T) {
	// setup
	collector, exporter := newTracedCollector()

	// act
	collector.FinishSpan(foreignSpan{}, "success", nil)

	// assert
	assert.Empty(t, exporter.GetSpans())
}

type foreignSpan struct{}

func (foreignSpan) SetStatus(string)            {}
func (foreignSpan) AddAttribute(string, string) {}

func assertSpanAttribute(t *testing.T, span tracetest.SpanStub, key, expected string) {
	t.Helper()

	for _, attr := range span.Attributes {
		if attr.Key == attribute.Key(key) {
			assert.Equal(t, expected, attr.Value.AsString(), "attribute %q", key)
			return
		}
	}

	assert.Failf(t, "attribute missing", "span %q has no attribute %q", span.Name, key)
}
