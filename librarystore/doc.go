// Package librarystore provides the core types of the library management exercise:
// books, members, loans and returns, together with the calendar-date helpers used for
// due dates and overdue penalties, the sentinel errors shared by all store implementations,
// and the dependency-free observability interfaces (Logger, MetricsCollector, TracingCollector).
//
// Key types:
//   - Book, Member, Loan, Return: persisted records
//   - BookPatch, MemberPatch: partial updates where nil fields stay untouched
//   - LoanRecord, OverdueLoan, PopularBook, MemberStats: report rows
//
// Dates are calendar dates in the form YYYY-MM-DD. They are stored as text so that
// lexical and chronological order coincide on every supported database.
//
// A SQL implementation lives in the sqlengine sub-package:
//
//	store, err := sqlengine.NewStoreFromSQLDB(db, sqlengine.WithDialect(sqlengine.DialectSQLite))
//	if err != nil {
//		// handle error
//	}
//
//	bookID, err := store.AddBook(ctx, librarystore.NewBook{Title: "Dune", ISBN: "978-0441172719", Quantity: 2})
package librarystore
