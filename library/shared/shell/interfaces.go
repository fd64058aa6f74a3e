package shell

import (
	"context"
)

// Command represents the contract for all command types of the library.
// The CommandType method enables polymorphic handling and observability instrumentation.
type Command interface {
	CommandType() string
}

// CoreCommandHandler defines the contract for components that process commands.
// Handlers orchestrate the command workflow: load state, decide, apply.
// Implementations focus on business logic and are wrapped with observability decorators.
type CoreCommandHandler[C Command] interface {
	Handle(ctx context.Context, command C) (HandlerResult, error)
}

// Query represents the contract for all query types of the library.
type Query interface {
	QueryType() string
}

// QueryResult represents the contract for all query result types.
// ResultCount reports how many rows the result carries and is used for logging and metrics.
type QueryResult interface {
	ResultCount() int
}

// CoreQueryHandler defines the contract for components that process queries.
// The generic parameters Q and R ensure type safety between queries and their results.
type CoreQueryHandler[Q Query, R QueryResult] interface {
	Handle(ctx context.Context, query Q) (R, error)
}
