package oteladapters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-exercises-go/librarystore/oteladapters"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine"
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper"              //nolint:revive
	. "github.com/AntonStoeckl/library-exercises-go/testutil/helper/storewrapper" //nolint:revive
)

func Test_Store_WithOTelAdapters_ExportsSpansAndMetrics(t *testing.T) {
	// setup
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	meterProvider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	exporter := tracetest.NewInMemoryExporter()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	wrapper := CreateWrapperWithTestConfig(t,
		sqlengine.WithMetrics(oteladapters.NewMetricsCollector(meterProvider.Meter("library"))),
		sqlengine.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("library"))),
	)
	defer wrapper.Close()
	store := wrapper.GetStore()

	// act
	GivenBookWasAdded(t, ctx, store, FixtureBook("978-1098100131", 2))

	// assert
	var found bool
	for _, span := range exporter.GetSpans() {
		if span.Name == "librarystore.add_book" {
			found = true
			assertSpanAttribute(t, span, "operation", "add_book")
			assertSpanAttribute(t, span, "row_count", "1")
		}
	}
	assert.True(t, found, "add_book span was not exported")

	histogram := findHistogram(t, reader, "librarystore_operation_duration_seconds")
	require.NotEmpty(t, histogram.DataPoints)
}

func Test_Store_WithOTelTracing_LogsInsideOperationSpan(t *testing.T) {
	// setup
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	tracerProvider := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	spy := NewContextualLoggerSpy()

	wrapper := CreateWrapperWithTestConfig(t,
		sqlengine.WithTracing(oteladapters.NewTracingCollector(tracerProvider.Tracer("library"))),
		sqlengine.WithContextualLogger(spy),
	)
	defer wrapper.Close()

	// act
	_, err := wrapper.GetStore().CountMembers(ctx)

	// assert
	require.NoError(t, err)

	record, found := spy.FindRecord("info", "library store operation: count_members")
	require.True(t, found)

	spanCtx := trace.SpanContextFromContext(record.Context)
	require.True(t, spanCtx.IsValid())

	var spanName string
	for _, span := range exporter.GetSpans() {
		if span.SpanContext.SpanID() == spanCtx.SpanID() {
			spanName = span.Name
		}
	}
	assert.Equal(t, "librarystore.count_members", spanName)
}
