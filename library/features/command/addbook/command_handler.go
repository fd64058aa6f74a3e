package addbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the CommandHandler for library store operations.
type Store interface {
	AddBook(ctx context.Context, book librarystore.NewBook) (librarystore.BookID, error)
}

// CommandHandler adds books to the catalog.
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

// Handle decides and stores the new book. The HandlerResult carries the new book id.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult
	var bookID librarystore.BookID

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, bookID, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics, decision.Event), err
	}

	return shell.NewSuccessResult(retryMetrics, bookID, decision.Event), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, librarystore.BookID, error) {
	result := Decide(command)
	if err := result.HasError(); err != nil {
		return result, 0, err
	}

	event, ok := result.Event.(core.BookAdded)
	if !ok {
		return core.DecisionResult{}, 0, errors.New("add book: unexpected decision event")
	}

	bookID, err := h.store.AddBook(ctx, event.Book)
	if errors.Is(err, librarystore.ErrDuplicateISBN) {
		rejected := reject(command, failureReasonDuplicateISBN, err)
		return rejected, 0, rejected.HasError()
	}

	if err != nil {
		return core.DecisionResult{}, 0, err
	}

	return result, bookID, nil
}
