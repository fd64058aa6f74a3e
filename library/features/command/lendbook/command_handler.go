package lendbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

// DefaultLoanPeriodDays is used when neither the command nor the handler configures a loan period.
const DefaultLoanPeriodDays = 14

// Store defines the interface needed by the CommandHandler for library store operations.
type Store interface {
	MemberByID(ctx context.Context, id librarystore.MemberID) (librarystore.Member, error)
	MemberOverdueDays(ctx context.Context, id librarystore.MemberID, asOf librarystore.DateString) (int, error)
	BookByID(ctx context.Context, id librarystore.BookID) (librarystore.Book, error)
	LendBook(ctx context.Context, loan librarystore.NewLoan) (librarystore.LoanID, error)
}

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
// It handles the workflow: Load -> Decide -> Apply.
// External wrappers handle all observability concerns.
type CommandHandler struct {
	store                 Store
	defaultLoanPeriodDays int
	retryOptions          []shell.RetryOption
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithDefaultLoanPeriodDays sets the loan period used for commands without one.
// Values of zero or less are ignored.
func WithDefaultLoanPeriodDays(days int) Option {
	return func(h *CommandHandler) {
		if days > 0 {
			h.defaultLoanPeriodDays = days
		}
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store:                 store,
		defaultLoanPeriodDays: DefaultLoanPeriodDays,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command processing workflow with retry logic.
// The HandlerResult carries the id of the created loan and the decided event.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	if command.LoanPeriodDays <= 0 {
		command.LoanPeriodDays = h.defaultLoanPeriodDays
	}

	var decision core.DecisionResult
	var loanID librarystore.LoanID

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, loanID, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics, decision.Event), err
	}

	return shell.NewSuccessResult(retryMetrics, loanID, decision.Event), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, librarystore.LoanID, error) {
	// Load phase
	s, err := h.loadState(ctx, command)
	if err != nil {
		return core.DecisionResult{}, 0, err
	}

	// Business logic phase - delegate to pure core function
	result := Decide(s, command)
	if err := result.HasError(); err != nil {
		return result, 0, err
	}

	event, ok := result.Event.(core.BookLent)
	if !ok {
		return core.DecisionResult{}, 0, errors.New("lend book: unexpected decision event")
	}

	// Apply phase
	loanID, err := h.store.LendBook(ctx, librarystore.NewLoan{
		BookID:   event.BookID,
		MemberID: event.MemberID,
		LoanDate: event.LoanDate,
		DueDate:  event.DueDate,
	})
	if errors.Is(err, librarystore.ErrBookNotAvailable) {
		// another loan took the last copy between load and apply
		rejected := reject(command, failureReasonBookNotAvailable, err)
		return rejected, 0, rejected.HasError()
	}

	if err != nil {
		return core.DecisionResult{}, 0, err
	}

	return result, loanID, nil
}

func (h CommandHandler) loadState(ctx context.Context, command Command) (State, error) {
	var s State

	_, err := h.store.MemberByID(ctx, command.MemberID)
	switch {
	case errors.Is(err, librarystore.ErrMemberNotFound):
		return s, nil
	case err != nil:
		return s, err
	}

	s.MemberExists = true

	s.MemberOverdueDays, err = h.store.MemberOverdueDays(ctx, command.MemberID, command.LoanDate)
	if err != nil {
		return s, err
	}

	book, err := h.store.BookByID(ctx, command.BookID)
	switch {
	case errors.Is(err, librarystore.ErrBookNotFound):
		return s, nil
	case err != nil:
		return s, err
	}

	s.BookExists = true
	s.BookAvailable = book.Available

	return s, nil
}
