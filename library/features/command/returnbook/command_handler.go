package returnbook

import (
	"context"
	"errors"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/core"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	logMsgLateReturn      = "book returned late, member is suspended"
	logAttrLoanID         = "loan_id"
	logAttrMemberID       = "member_id"
	logAttrOverdueDays    = "overdue_days"
	logAttrSuspensionDays = "suspension_days"
)

// Store defines the interface needed by the CommandHandler for library store operations.
type Store interface {
	LoanByID(ctx context.Context, id librarystore.LoanID) (librarystore.Loan, error)
	ReturnLoan(ctx context.Context, ret librarystore.NewReturn) (int64, error)
}

// CommandHandler orchestrates the command processing workflow with pure business logic and retry.
type CommandHandler struct {
	store        Store
	retryOptions []shell.RetryOption
	logger       shell.Logger
}

// Option configures a CommandHandler.
type Option func(*CommandHandler)

// WithRetryOptions sets a custom retry configuration for the handler.
func WithRetryOptions(opts ...shell.RetryOption) Option {
	return func(h *CommandHandler) {
		h.retryOptions = opts
	}
}

// WithLogger sets the logger that receives the late return warnings.
func WithLogger(logger shell.Logger) Option {
	return func(h *CommandHandler) {
		h.logger = logger
	}
}

// NewCommandHandler creates a new CommandHandler with optional configuration.
func NewCommandHandler(store Store, opts ...Option) CommandHandler {
	handler := CommandHandler{
		store: store,
	}

	for _, opt := range opts {
		opt(&handler)
	}

	return handler
}

// Handle executes the command processing workflow with retry logic.
// The HandlerResult carries the id of the return record and the BookReturned event,
// whose SuspensionDays is positive for late returns.
func (h CommandHandler) Handle(ctx context.Context, command Command) (shell.HandlerResult, error) {
	var decision core.DecisionResult
	var returnID int64

	retryMetrics, err := shell.RetryWithExponentialBackoff(ctx, func(retryCtx context.Context) error {
		var execErr error
		decision, returnID, execErr = h.executeCommand(retryCtx, command)

		return execErr
	}, h.retryOptions...)

	if err != nil {
		return shell.NewErrorResult(retryMetrics, decision.Event), err
	}

	if event, ok := decision.Event.(core.BookReturned); ok && event.IsLate() && h.logger != nil {
		h.logger.Warn(logMsgLateReturn,
			logAttrLoanID, event.LoanID,
			logAttrMemberID, event.MemberID,
			logAttrOverdueDays, event.OverdueDays,
			logAttrSuspensionDays, event.SuspensionDays,
		)
	}

	return shell.NewSuccessResult(retryMetrics, returnID, decision.Event), nil
}

// executeCommand contains the core command processing logic that can be retried.
func (h CommandHandler) executeCommand(ctx context.Context, command Command) (core.DecisionResult, int64, error) {
	// Load phase
	var s State

	loan, err := h.store.LoanByID(ctx, command.LoanID)
	switch {
	case errors.Is(err, librarystore.ErrLoanNotFound):
	case err != nil:
		return core.DecisionResult{}, 0, err
	default:
		s = State{LoanExists: true, Loan: loan}
	}

	// Business logic phase
	result := Decide(s, command)
	if err := result.HasError(); err != nil {
		return result, 0, err
	}

	event, ok := result.Event.(core.BookReturned)
	if !ok {
		return core.DecisionResult{}, 0, errors.New("return book: unexpected decision event")
	}

	// Apply phase
	returnID, err := h.store.ReturnLoan(ctx, librarystore.NewReturn{
		LoanID:     event.LoanID,
		ReturnDate: event.ReturnDate,
	})
	if errors.Is(err, librarystore.ErrLoanAlreadyReturned) {
		// a concurrent return won the race
		rejected := reject(command, failureReasonLoanAlreadyReturned, err)
		return rejected, 0, rejected.HasError()
	}

	if err != nil {
		return core.DecisionResult{}, 0, err
	}

	return result, returnID, nil
}
