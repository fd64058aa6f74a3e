package deletebook

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
	LoanHistoryByBook(ctx context.Context, id librarystore.BookID) ([]librarystore.LoanRecord, error)
	DeleteBook(ctx context.Context, id librarystore.BookID) error
}

// CommandHandler removes books that were never lent.
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

	return shell.NewSuccessResult(retryMetrics, 0, decision.Event), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, error) {
	s, err := h.loadState(ctx, command.BookID)
	if err != nil {
		return core.DecisionResult{}, err
	}

	result := Decide(s, command)
	if err := result.HasError(); err != nil {
		return result, err
	}

	err = h.store.DeleteBook(ctx, command.BookID)
	if errors.Is(err, librarystore.ErrBookHasLoans) {
		// a loan was created between load and apply
		rejected := reject(command, failureReasonBookHasLoans, err)
		return rejected, rejected.HasError()
	}

	if err != nil {
		return core.DecisionResult{}, err
	}

	return result, nil
}

func (h CommandHandler) loadState(ctx context.Context, bookID librarystore.BookID) (State, error) {
	_, err := h.store.BookByID(ctx, bookID)
	switch {
	case errors.Is(err, librarystore.ErrBookNotFound):
		return State{}, nil
	case err != nil:
		return State{}, err
	}

	loans, err := h.store.LoanHistoryByBook(ctx, bookID)
	if err != nil {
		return State{}, err
	}

	return State{BookExists: true, LoanCount: len(loans)}, nil
}
