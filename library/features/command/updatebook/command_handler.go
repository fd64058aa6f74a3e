package updatebook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the CommandHandler for library store operations.
type Store interface {
	BookByID(ctx context.Context, id librarystore.BookID) (librarystore.Book, error)
	UpdateBook(ctx context.Context, id librarystore.BookID, patch librarystore.BookPatch) error
}

// CommandHandler applies partial book updates.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{store: store}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command processing workflow with retry logic.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics, decision.Event), err
	}

	if decision.IsIdempotent() {
		return shell.NewIdempotentResult(retryMetrics), nil
	}

	return shell.NewSuccessResult(retryMetrics, 0, decision.Event), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	var s State

	book, err := h.store.BookByID(ctx, command.BookID)
	switch {
	case errors.Is(err, librarystore.ErrBookNotFound):
	case err != nil:
		return core.DecisionResult{}, err
	default:
		s = State{BookExists: true, Book: book}
	}

	result := Decide(s, command)
	if err := result.HasError(); err != nil {
		return result, err
	}

	event, ok := result.Event.(core.BookUpdated)
	if !ok {
		return result, nil // idempotent
	}

	if err := h.store.UpdateBook(ctx, event.BookID, event.Patch); err != nil {
		return core.DecisionResult{}, err
	}

	return result, nil
}
