// Package handlers assembles the command and query handlers of the library and wraps
// each of them with the observable decorators.
package handlers

import (
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/addbook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/deletebook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/deletemember"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/lendbook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/registermember"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/returnbook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/updatebook"
	"github.com/AntonStoeckl/library-exercises-go/library/features/command/updatemember"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/activeloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findbooks"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/findmembers"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/inventory"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstats"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/memberstatus"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/overdueloans"
	"github.com/AntonStoeckl/library-exercises-go/library/features/query/popularbooks"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell/observable"
)

// Store is everything the handlers need from the library store. sqlengine.Store implements it.
type Store interface {
	addbook.Store
	updatebook.Store
	deletebook.Store
	registermember.Store
	updatemember.Store
	deletemember.Store
	lendbook.Store
	returnbook.Store
	findbooks.Store
	findmembers.Store
	memberstatus.Store
	findloans.Store
	overdueloans.Store
	activeloans.Store
	popularbooks.Store
	inventory.Store
	memberstats.Store
}

// Settings are the business defaults the handlers are configured with.
// Zero values leave the defaults of the feature packages in place.
type Settings struct {
	LoanPeriodDays int
	PopularLimit   int
	SearchLimit    int
	RetryOptions   []shell.RetryOption
}

// Instrumentation holds the optional observability collaborators. Nil fields are skipped.
type Instrumentation struct {
	Logger           shell.Logger
	ContextualLogger shell.ContextualLogger
	Metrics          shell.MetricsCollector
	Tracing          shell.TracingCollector
}

// Handlers holds one instrumented handler per use case.
type Handlers struct {
	AddBook        shell.CoreCommandHandler[addbook.Command]
	UpdateBook     shell.CoreCommandHandler[updatebook.Command]
	DeleteBook     shell.CoreCommandHandler[deletebook.Command]
	RegisterMember shell.CoreCommandHandler[registermember.Command]
	UpdateMember   shell.CoreCommandHandler[updatemember.Command]
	DeleteMember   shell.CoreCommandHandler[deletemember.Command]
	LendBook       shell.CoreCommandHandler[lendbook.Command]
	ReturnBook     shell.CoreCommandHandler[returnbook.Command]

	FindBooks    shell.CoreQueryHandler[findbooks.Query, findbooks.Books]
	FindMembers  shell.CoreQueryHandler[findmembers.Query, findmembers.Members]
	MemberStatus shell.CoreQueryHandler[memberstatus.Query, memberstatus.Status]
	FindLoans    shell.CoreQueryHandler[findloans.Query, findloans.Loans]
	OverdueLoans shell.CoreQueryHandler[overdueloans.Query, overdueloans.OverdueLoans]
	ActiveLoans  shell.CoreQueryHandler[activeloans.Query, activeloans.ActiveLoans]
	PopularBooks shell.CoreQueryHandler[popularbooks.Query, popularbooks.PopularBooks]
	Inventory    shell.CoreQueryHandler[inventory.Query, inventory.Inventory]
	MemberStats  shell.CoreQueryHandler[memberstats.Query, memberstats.MemberStats]
}

// New creates all handlers on top of store.
func New(store Store, settings Settings, instrumentation Instrumentation) (Handlers, error) {
	var h Handlers
	var err error

	retry := settings.RetryOptions

	if h.AddBook, err = wrapCommand[addbook.Command](
		addbook.NewCommandHandler(store, addbook.WithRetryOptions(retry...)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.UpdateBook, err = wrapCommand[updatebook.Command](
		updatebook.NewCommandHandler(store, updatebook.WithRetryOptions(retry...)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.DeleteBook, err = wrapCommand[deletebook.Command](
		deletebook.NewCommandHandler(store, deletebook.WithRetryOptions(retry...)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.RegisterMember, err = wrapCommand[registermember.Command](
		registermember.NewCommandHandler(store, registermember.WithRetryOptions(retry...)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.UpdateMember, err = wrapCommand[updatemember.Command](
		updatemember.NewCommandHandler(store, updatemember.WithRetryOptions(retry...)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.DeleteMember, err = wrapCommand[deletemember.Command](
		deletemember.NewCommandHandler(store, deletemember.WithRetryOptions(retry...)), instrumentation); err != nil {
		return Handlers{}, err
	}

	lendOptions := []lendbook.Option{
		lendbook.WithRetryOptions(retry...),
		lendbook.WithDefaultLoanPeriodDays(settings.LoanPeriodDays),
	}
	if h.LendBook, err = wrapCommand[lendbook.Command](
		lendbook.NewCommandHandler(store, lendOptions...), instrumentation); err != nil {
		return Handlers{}, err
	}

	returnOptions := []returnbook.Option{returnbook.WithRetryOptions(retry...)}
	if instrumentation.Logger != nil {
		returnOptions = append(returnOptions, returnbook.WithLogger(instrumentation.Logger))
	}
	if h.ReturnBook, err = wrapCommand[returnbook.Command](
		returnbook.NewCommandHandler(store, returnOptions...), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.FindBooks, err = wrapQuery[findbooks.Query, findbooks.Books](
		findbooks.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.FindMembers, err = wrapQuery[findmembers.Query, findmembers.Members](
		findmembers.NewQueryHandler(store, findmembers.WithSearchLimit(settings.SearchLimit)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.MemberStatus, err = wrapQuery[memberstatus.Query, memberstatus.Status](
		memberstatus.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.FindLoans, err = wrapQuery[findloans.Query, findloans.Loans](
		findloans.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.OverdueLoans, err = wrapQuery[overdueloans.Query, overdueloans.OverdueLoans](
		overdueloans.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.ActiveLoans, err = wrapQuery[activeloans.Query, activeloans.ActiveLoans](
		activeloans.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.PopularBooks, err = wrapQuery[popularbooks.Query, popularbooks.PopularBooks](
		popularbooks.NewQueryHandler(store, popularbooks.WithDefaultLimit(settings.PopularLimit)), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.Inventory, err = wrapQuery[inventory.Query, inventory.Inventory](
		inventory.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	if h.MemberStats, err = wrapQuery[memberstats.Query, memberstats.MemberStats](
		memberstats.NewQueryHandler(store), instrumentation); err != nil {
		return Handlers{}, err
	}

	return h, nil
}

func wrapCommand[C shell.Command](
	handler shell.CoreCommandHandler[C],
	instrumentation Instrumentation,
) (shell.CoreCommandHandler[C], error) {

	var opts []observable.CommandOption[C]

	if instrumentation.Logger != nil {
		opts = append(opts, observable.WithCommandLogging[C](instrumentation.Logger))
	}

	if instrumentation.ContextualLogger != nil {
		opts = append(opts, observable.WithCommandContextualLogging[C](instrumentation.ContextualLogger))
	}

	if instrumentation.Metrics != nil {
		opts = append(opts, observable.WithCommandMetrics[C](instrumentation.Metrics))
	}

	if instrumentation.Tracing != nil {
		opts = append(opts, observable.WithCommandTracing[C](instrumentation.Tracing))
	}

	return observable.NewCommandWrapper(handler, opts...)
}

func wrapQuery[Q shell.Query, R shell.QueryResult](
	handler shell.CoreQueryHandler[Q, R],
	instrumentation Instrumentation,
) (shell.CoreQueryHandler[Q, R], error) {

	var opts []observable.QueryOption[Q, R]

	if instrumentation.Logger != nil {
		opts = append(opts, observable.WithQueryLogging[Q, R](instrumentation.Logger))
	}

	if instrumentation.ContextualLogger != nil {
		opts = append(opts, observable.WithQueryContextualLogging[Q, R](instrumentation.ContextualLogger))
	}

	if instrumentation.Metrics != nil {
		opts = append(opts, observable.WithQueryMetrics[Q, R](instrumentation.Metrics))
	}

	if instrumentation.Tracing != nil {
		opts = append(opts, observable.WithQueryTracing[Q, R](instrumentation.Tracing))
	}

	return observable.NewQueryWrapper(handler, opts...)
}
