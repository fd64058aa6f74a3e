package updatemember

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
	UpdateMember(ctx context.Context, id librarystore.MemberID, patch librarystore.MemberPatch) error
}

// CommandHandler applies partial member updates.
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

	member, err := h.store.MemberByID(ctx, command.MemberID)
	switch {
	case errors.Is(err, librarystore.ErrMemberNotFound):
	case err != nil:
		return core.DecisionResult{}, err
	default:
		s = State{MemberExists: true, Member: member}
	}

	result := Decide(s, command)
	if err := result.HasError(); err != nil {
		return result, err
	}

	event, ok := result.Event.(core.MemberUpdated)
	if !ok {
		return result, nil
	}

	if err := h.store.UpdateMember(ctx, event.MemberID, event.Patch); err != nil {
		return core.DecisionResult{}, err
	}

	return result, nil
}
