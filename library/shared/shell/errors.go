package shell

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// IsCancellationError checks if an error is due to context cancellation.
func IsCancellationError(err error) bool {
	return errors.Is(err, context.Canceled)
}

// IsTimeoutError checks if an error is due to context deadline exceeded.
func IsTimeoutError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// IsDatabaseBusyError checks if an error is due to a locked database.
func IsDatabaseBusyError(err error) bool {
	return errors.Is(err, librarystore.ErrDatabaseBusy)
}

// IsBusinessRuleError checks if an error is a rejected command.
func IsBusinessRuleError(err error) bool {
	return errors.Is(err, core.ErrBusinessRuleViolated)
}
