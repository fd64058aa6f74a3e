package shell

import (
	"time"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
)

// HandlerResult represents the outcome of a command handler execution.
// It captures business outcomes (idempotency, created entity, decided event) and execution
// metadata (retry information) without coupling the handler to observability implementations.
type HandlerResult struct {
	// Idempotent indicates that no state change was needed.
	// This is a first-class business outcome, not an error condition.
	Idempotent bool

	// EntityID is the id of the row the command created, e.g. the loan id of a lent book.
	// It is zero for commands that do not create anything.
	EntityID int64

	// Event is the domain event decided for the command, nil for idempotent outcomes.
	// For rejected commands it is the failure event.
	Event core.DomainEvent

	// RetryAttempts is the total number of attempts made (1 for no retries, 2+ for retries).
	RetryAttempts int

	// TotalRetryDelay is the cumulative time spent in retry backoff delays.
	TotalRetryDelay time.Duration

	// LastErrorType describes the type of the final error encountered during retries.
	// Values: "none", "database_busy", "context_canceled", "context_deadline_exceeded", "other"
	LastErrorType string

	// RetriesExhausted indicates whether max retry attempts were reached with a retryable error.
	RetriesExhausted bool
}

// NewSuccessResult creates a HandlerResult for operations that changed state.
func NewSuccessResult(retryMetrics RetryMetrics, entityID int64, event core.DomainEvent) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.EntityID = entityID
	result.Event = event

	return result
}

// NewIdempotentResult creates a HandlerResult for idempotent operations.
func NewIdempotentResult(retryMetrics RetryMetrics) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.Idempotent = true

	return result
}

// NewErrorResult creates a HandlerResult for failed operations.
// event is the failure event when a business rule rejected the command, otherwise nil.
func NewErrorResult(retryMetrics RetryMetrics, event core.DomainEvent) HandlerResult {
	result := fromRetryMetrics(retryMetrics)
	result.Event = event

	return result
}

func fromRetryMetrics(retryMetrics RetryMetrics) HandlerResult {
	return HandlerResult{
		RetryAttempts:    retryMetrics.Attempts,
		TotalRetryDelay:  retryMetrics.TotalDelay,
		LastErrorType:    retryMetrics.LastErrorType,
		RetriesExhausted: retryMetrics.RetriesExhausted,
	}
}
