package core

import (
	"errors"
	"fmt"
)

// ErrBusinessRuleViolated marks errors of commands that a Decide function rejected.
var ErrBusinessRuleViolated = errors.New("business rule violated")

// RejectionError builds the error of a rejected command.
// The result matches ErrBusinessRuleViolated and reason with errors.Is.
func RejectionError(event DomainEvent, reason error) error {
	return fmt.Errorf("%w: %s: %w", ErrBusinessRuleViolated, event.IsEventType(), reason)
}
