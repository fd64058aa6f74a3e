// Package oteladapters implements the librarystore observability interfaces on top of
// the OpenTelemetry metrics, tracing and logging APIs.
//
// Usage:
//
//	meter := otel.Meter("library")
//	tracer := otel.Tracer("library")
//
//	store, err := sqlengine.NewStoreFromSQLDB(db,
//		sqlengine.WithMetrics(oteladapters.NewMetricsCollector(meter)),
//		sqlengine.WithTracing(oteladapters.NewTracingCollector(tracer)),
//	)
package oteladapters
