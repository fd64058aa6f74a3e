package registermember

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// Store defines the interface needed by the CommandHandler for library store operations.
type Store interface {
	AddMember(ctx context.Context, member librarystore.NewMember) (librarystore.MemberID, error)
}

// CommandHandler registers members.
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

// Handle decides and stores the new member. The HandlerResult carries the new member id.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult
	var memberID librarystore.MemberID

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, memberID, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics, decision.Event), err
	}

	return shell.NewSuccessResult(retryMetrics, memberID, decision.Event), nil
}

func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, librarystore.MemberID, error) {
	result := Decide(command)
	if err := result.HasError(); err != nil {
		return result, 0, err
	}

	event, ok := result.Event.(core.MemberRegistered)
	if !ok {
		return core.DecisionResult{}, 0, errors.New("register member: unexpected decision event")
	}

	memberID, err := h.store.AddMember(ctx, event.Member)
	if err != nil {
		return core.DecisionResult{}, 0, err
	}

	return result, memberID, nil
}
