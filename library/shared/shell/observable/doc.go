// Package observable decorates library command and query handlers with metrics, tracing, and logging.
package observable
