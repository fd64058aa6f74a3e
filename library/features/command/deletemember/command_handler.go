package deletemember

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the CommandHandler for library store operations.
type Store interface {
	MemberByID(ctx context.Context, id librarystore.MemberID) (librarystore.Member, error)
	LoanHistoryByMember(ctx context.Context, id librarystore.MemberID) ([]librarystore.LoanRecord, error)
	DeleteMember(ctx context.Context, id librarystore.MemberID) error
}

// CommandHandler removes members that never borrowed a book.
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
	s, err := h.loadState(ctx, command.MemberID)
	if err != nil {
		return core.DecisionResult{}, err
	}

	result := Decide(s, command)
	if err := result.HasError(); err != nil {
		return result, err
	}

	err = h.store.DeleteMember(ctx, command.MemberID)
	if errors.Is(err, librarystore.ErrMemberHasLoans) {
		rejected := reject(command, failureReasonMemberHasLoans, err)
		return rejected, rejected.HasError()
	}

	if err != nil {
		return core.DecisionResult{}, err
	}

	return result, nil
}

func (h CommandHandler) loadState(ctx context.Context, memberID librarystore.MemberID) (State, error) {
	_, err := h.store.MemberByID(ctx, memberID)
	switch {
	case errors.Is(err, librarystore.ErrMemberNotFound):
		return State{}, nil
	case err != nil:
		return State{}, err
	}

	loans, err := h.store.LoanHistoryByMember(ctx, memberID)
	if err != nil {
		return State{}, err
	}

	return State{MemberExists: true, LoanCount: len(loans)}, nil
}
