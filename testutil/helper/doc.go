// Package helper provides test doubles and fixtures shared by the library test suites.
//
// It contains a capturing slog handler, spies for the metrics and tracing collector
// interfaces, and Given... functions that arrange books, members and loans in a store.
package helper
