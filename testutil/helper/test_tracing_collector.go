package helper

import (
	"context"
	"maps"
	"sync"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// TestSpanContext implements librarystore.SpanContext and remembers what was set on it.
type TestSpanContext struct {
	status     string
	attributes map[string]string
	mu         sync.Mutex
}

// SetStatus implements librarystore.SpanContext.
func (s *TestSpanContext) SetStatus(status string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
}

// AddAttribute implements librarystore.SpanContext.
func (s *TestSpanContext) AddAttribute(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attributes == nil {
		s.attributes = make(map[string]string)
	}
	s.attributes[key] = value
}

// GetStatus returns the last status set on the span.
func (s *TestSpanContext) GetStatus() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// GetAttributes returns a copy of the attributes added to the span.
func (s *TestSpanContext) GetAttributes() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.attributes)
}

// SpanRecord represents one started span.
type SpanRecord struct {
	Name            string
	StartAttributes map[string]string
	Status          string
	EndAttributes   map[string]string
	Finished        bool
	SpanContext     *TestSpanContext
}

// TestTracingCollector captures the calls of the TracingCollector interface for assertions.
type TestTracingCollector struct {
	spanRecords []SpanRecord
	mu          sync.Mutex
}

// NewTestTracingCollector creates an empty TestTracingCollector.
func NewTestTracingCollector() *TestTracingCollector {
	return &TestTracingCollector{}
}

// StartSpan implements librarystore.TracingCollector.
func (c *TestTracingCollector) StartSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, librarystore.SpanContext) {

	c.mu.Lock()
	defer c.mu.Unlock()

	spanCtx := &TestSpanContext{attributes: make(map[string]string)}
	c.spanRecords = append(c.spanRecords, SpanRecord{
		Name:            name,
		StartAttributes: maps.Clone(attrs),
		SpanContext:     spanCtx,
	})

	return ctx, spanCtx
}

// FinishSpan implements librarystore.TracingCollector.
func (c *TestTracingCollector) FinishSpan(spanCtx librarystore.SpanContext, status string, attrs map[string]string) {
	testSpanCtx, ok := spanCtx.(*TestSpanContext)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.spanRecords {
		if c.spanRecords[i].SpanContext == testSpanCtx {
			c.spanRecords[i].Status = status
			c.spanRecords[i].EndAttributes = maps.Clone(attrs)
			c.spanRecords[i].Finished = true

			return
		}
	}
}

// GetSpanRecords returns a copy of all captured span records.
func (c *TestTracingCollector) GetSpanRecords() []SpanRecord {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]SpanRecord(nil), c.spanRecords...)
}

// FindSpan returns the first span with the given name.
func (c *TestTracingCollector) FindSpan(name string) (SpanRecord, bool) {
	for _, record := range c.GetSpanRecords() {
		if record.Name == name {
			return record, true
		}
	}

	return SpanRecord{}, false
}

// Reset clears all captured span records.
func (c *TestTracingCollector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.spanRecords = nil
}
