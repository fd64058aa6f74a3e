// Package telemetry wires in-process OpenTelemetry providers for the command line tools:
// finished spans are written to a logger and metrics are collected on demand and dumped as JSON.
package telemetry

import (
	"context"
	"errors"
	"io"
	"sort"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

var (
	// ErrCollectingMetricsFailed is returned when the manual reader cannot collect.
	ErrCollectingMetricsFailed = errors.New("collecting metrics failed")

	// ErrWritingMetricsFailed is returned when the JSON dump cannot be written.
	ErrWritingMetricsFailed = errors.New("writing metrics failed")
)

// Telemetry owns a MeterProvider backed by a ManualReader and a TracerProvider
// that hands finished spans to a SpanLogExporter.
type Telemetry struct {
	reader         *sdkmetric.ManualReader
	meterProvider  *sdkmetric.MeterProvider
	tracerProvider *sdktrace.TracerProvider
}

// New creates the providers. Spans are logged synchronously at debug level.
func New(logger librarystore.Logger) *Telemetry {
	reader := sdkmetric.NewManualReader()

	return &Telemetry{
		reader:         reader,
		meterProvider:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)),
		tracerProvider: sdktrace.NewTracerProvider(sdktrace.WithSyncer(NewSpanLogExporter(logger))),
	}
}

// Meter returns a named meter of the MeterProvider.
func (t *Telemetry) Meter(name string) metric.Meter {
	return t.meterProvider.Meter(name)
}

// Tracer returns a named tracer of the TracerProvider.
func (t *Telemetry) Tracer(name string) trace.Tracer {
	return t.tracerProvider.Tracer(name)
}

// Shutdown flushes and stops both providers.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	return errors.Join(
		t.tracerProvider.Shutdown(ctx),
		t.meterProvider.Shutdown(ctx),
	)
}

// Metric is the JSON form of one collected instrument.
type Metric struct {
	Name   string  `json:"name"`
	Kind   string  `json:"kind"`
	Unit   string  `json:"unit,omitempty"`
	Points []Point `json:"points"`
}

// Point is the JSON form of one data point. Histograms fill Count and Sum, counters and gauges fill Value.
type Point struct {
	Attributes map[string]string `json:"attributes,omitempty"`
	Count      uint64            `json:"count,omitempty"`
	Sum        float64           `json:"sum,omitempty"`
	Value      float64           `json:"value"`
}

// CollectMetrics reads the current state of all instruments, sorted by name.
func (t *Telemetry) CollectMetrics(ctx context.Context) ([]Metric, error) {
	var resourceMetrics metricdata.ResourceMetrics
	if err := t.reader.Collect(ctx, &resourceMetrics); err != nil {
		return nil, errors.Join(ErrCollectingMetricsFailed, err)
	}

	metrics := make([]Metric, 0)
	for _, scope := range resourceMetrics.ScopeMetrics {
		for _, m := range scope.Metrics {
			metrics = append(metrics, toMetric(m))
		}
	}

	sort.Slice(metrics, func(i, j int) bool {
		return metrics[i].Name < metrics[j].Name
	})

	return metrics, nil
}

// WriteMetrics collects the metrics and writes them to w as indented JSON.
func (t *Telemetry) WriteMetrics(ctx context.Context, w io.Writer) error {
	metrics, err := t.CollectMetrics(ctx)
	if err != nil {
		return err
	}

	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(metrics, "", "  ")
	if err != nil {
		return errors.Join(ErrWritingMetricsFailed, err)
	}

	if _, err = w.Write(append(data, '\n')); err != nil {
		return errors.Join(ErrWritingMetricsFailed, err)
	}

	return nil
}

func toMetric(m metricdata.Metrics) Metric {
	out := Metric{Name: m.Name, Unit: m.Unit, Points: make([]Point, 0)}

	switch data := m.Data.(type) {
	case metricdata.Histogram[float64]:
		out.Kind = "histogram"
		for _, dp := range data.DataPoints {
			out.Points = append(out.Points, Point{Attributes: attributesOf(dp.Attributes), Count: dp.Count, Sum: dp.Sum})
		}
	case metricdata.Sum[int64]:
		out.Kind = "counter"
		for _, dp := range data.DataPoints {
			out.Points = append(out.Points, Point{Attributes: attributesOf(dp.Attributes), Value: float64(dp.Value)})
		}
	case metricdata.Gauge[float64]:
		out.Kind = "gauge"
		for _, dp := range data.DataPoints {
			out.Points = append(out.Points, Point{Attributes: attributesOf(dp.Attributes), Value: dp.Value})
		}
	default:
		out.Kind = "unsupported"
	}

	return out
}

func attributesOf(set attribute.Set) map[string]string {
	attrs := make(map[string]string)
	for _, kv := range set.ToSlice() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}

	return attrs
}
