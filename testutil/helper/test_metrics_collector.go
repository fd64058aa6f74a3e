package helper

import (
	"maps"
	"sync"
	"time"
)

// TestMetricsCollector captures the calls of the MetricsCollector interface for assertions.
type TestMetricsCollector struct {
	durationRecords []DurationRecord
	counterRecords  []CounterRecord
	valueRecords    []ValueRecord
	mu              sync.Mutex
}

// DurationRecord represents a recorded duration metric call.
type DurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// CounterRecord represents a recorded counter increment.
type CounterRecord struct {
	Metric string
	Labels map[string]string
}

// ValueRecord represents a recorded value metric call.
type ValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewTestMetricsCollector creates an empty TestMetricsCollector.
func NewTestMetricsCollector() *TestMetricsCollector {
	return &TestMetricsCollector{}
}

// RecordDuration implements MetricsCollector.
func (c *TestMetricsCollector) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.durationRecords = append(c.durationRecords, DurationRecord{Metric: metric, Duration: duration, Labels: maps.Clone(labels)})
}

// IncrementCounter implements MetricsCollector.
func (c *TestMetricsCollector) IncrementCounter(metric string, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.counterRecords = append(c.counterRecords, CounterRecord{Metric: metric, Labels: maps.Clone(labels)})
}

// RecordValue implements MetricsCollector.
func (c *TestMetricsCollector) RecordValue(metric string, value float64, labels map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valueRecords = append(c.valueRecords, ValueRecord{Metric: metric, Value: value, Labels: maps.Clone(labels)})
}

// GetDurationRecords returns a copy of all captured duration records.
func (c *TestMetricsCollector) GetDurationRecords() []DurationRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]DurationRecord(nil), c.durationRecords...)
}

// GetCounterRecords returns a copy of all captured counter records.
func (c *TestMetricsCollector) GetCounterRecords() []CounterRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]CounterRecord(nil), c.counterRecords...)
}

// GetValueRecords returns a copy of all captured value records.
func (c *TestMetricsCollector) GetValueRecords() []ValueRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]ValueRecord(nil), c.valueRecords...)
}

// HasDurationRecord reports whether a duration was recorded for metric with all the given labels.
func (c *TestMetricsCollector) HasDurationRecord(metric string, labels map[string]string) bool {
	for _, record := range c.GetDurationRecords() {
		if record.Metric == metric && containsLabels(record.Labels, labels) {
			return true
		}
	}

	return false
}

// HasCounterRecord reports whether metric was incremented with all the given labels.
func (c *TestMetricsCollector) HasCounterRecord(metric string, labels map[string]string) bool {
	for _, record := range c.GetCounterRecords() {
		if record.Metric == metric && containsLabels(record.Labels, labels) {
			return true
		}
	}

	return false
}

// HasValueRecord reports whether value was recorded for metric with all the given labels.
func (c *TestMetricsCollector) HasValueRecord(metric string, value float64, labels map[string]string) bool {
	for _, record := range c.GetValueRecords() {
		if record.Metric == metric && record.Value == value && containsLabels(record.Labels, labels) {
			return true
		}
	}

	return false
}

// Reset clears all captured records.
func (c *TestMetricsCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.durationRecords = nil
	c.counterRecords = nil
	c.valueRecords = nil
}

func containsLabels(actual, expected map[string]string) bool {
	for k, v := range expected {
		if actual[k] != v {
			return false
		}
	}

	return true
}
