package oteladapters_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/AntonStoeckl/library-exercises-go/librarystore/oteladapters"
)

func newMeteredCollector() (*oteladapters.MetricsCollector, *sdkmetric.ManualReader) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	return oteladapters.NewMetricsCollector(provider.Meter("test")), reader
}

func Test_MetricsCollector_RecordDuration_RecordsSecondsWithLabels(t *testing.T) {
	// setup
	collector, reader := newMeteredCollector()

	// act
	collector.RecordDuration("librarystore_operation_duration_seconds", 150*time.Millisecond, map[string]string{
		"operation": "lend_book",
		"status":    "success",
	})

	// assert
	histogram := findHistogram(t, reader, "librarystore_operation_duration_seconds")
	require.Len(t, histogram.DataPoints, 1)
	point := histogram.DataPoints[0]
	assert.Equal(t, uint64(1), point.Count)
	assert.InDelta(t, 0.15, point.Sum, 0.001)

	expected := attribute.NewSet(
		attribute.String("operation", "lend_book"),
		attribute.String("status", "success"),
	)
	assert.True(t, point.Attributes.Equals(&expected))
}

func Test_MetricsCollector_IncrementCounter_SumsPerLabelSet(t *testing.T) {
	// setup
	collector, reader := newMeteredCollector()
	busy := map[string]string{"error_type": "database_busy"}
	other := map[string]string{"error_type": "other"}

	// act
	collector.IncrementCounter("librarystore_database_errors_total", busy)
	collector.IncrementCounterContext(context.Background(), "librarystore_database_errors_total", busy)
	collector.IncrementCounter("librarystore_database_errors_total", other)

	// assert
	sum := findSum(t, reader, "librarystore_database_errors_total")
	require.Len(t, sum.DataPoints, 2)

	totals := map[string]int64{}
	for _, point := range sum.DataPoints {
		value, _ := point.Attributes.Value("error_type")
		totals[value.AsString()] = point.Value
	}
	assert.Equal(t, map[string]int64{"database_busy": 2, "other": 1}, totals)
}

func Test_MetricsCollector_RecordValue_KeepsLastValue(t *testing.T) {
	// setup
	collector, reader := newMeteredCollector()
	labels := map[string]string{"operation": "overdue_loans"}

	// act
	collector.RecordValue("librarystore_rows_processed", 3, labels)
	collector.RecordValueContext(context.Background(), "librarystore_rows_processed", 7, labels)

	// assert
	gauge := findGauge(t, reader, "librarystore_rows_processed")
	require.Len(t, gauge.DataPoints, 1)
	assert.InDelta(t, 7.0, gauge.DataPoints[0].Value, 0.0001)
}

func Test_MetricsCollector_IsSafeForConcurrentUse(t *testing.T) {
	// setup
	collector, reader := newMeteredCollector()
	done := make(chan struct{})

	// act
	for range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for range 50 {
				collector.IncrementCounter("calls_total", nil)
			}
		}()
	}
	for range 8 {
		<-done
	}

	// assert
	sum := findSum(t, reader, "calls_total")
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(400), sum.DataPoints[0].Value)
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()

	var resourceMetrics metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &resourceMetrics))

	return resourceMetrics
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()

	for _, scope := range collect(t, reader).ScopeMetrics {
		for _, m := range scope.Metrics {
			if m.Name == name {
				return m
			}
		}
	}

	require.Failf(t, "metric not found", "metric %q was not recorded", name)

	return metricdata.Metrics{}
}

func findHistogram(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Histogram[float64] {
	t.Helper()

	histogram, ok := findMetric(t, reader, name).Data.(metricdata.Histogram[float64])
	require.True(t, ok, "metric %q is not a float64 histogram", name)

	return histogram
}

func findSum(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Sum[int64] {
	t.Helper()

	sum, ok := findMetric(t, reader, name).Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %q is not an int64 sum", name)

	return sum
}

func findGauge(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Gauge[float64] {
	t.Helper()

	gauge, ok := findMetric(t, reader, name).Data.(metricdata.Gauge[float64])
	require.True(t, ok, "metric %q is not a float64 gauge", name)

	return gauge
}
