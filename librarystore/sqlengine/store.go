package sqlengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine/internal/adapters"
)

const (
	logMsgBuildStatementFailed = "failed to build sql statement"
	logMsgDBQueryFailed        = "database query execution failed"
	logMsgDBExecFailed         = "database statement execution failed"
	logMsgCloseRowsFailed      = "failed to close database rows"
	logMsgScanRowFailed        = "failed to scan database row"
	logMsgRollbackFailed       = "failed to roll back transaction"
	logMsgSQLExecuted          = "executed sql for: "
	logMsgOperation            = "library store operation: "
	logAttrError               = "error"
	logAttrQuery               = "query"
	logAttrOperation           = "operation"
	logAttrRowCount            = "row_count"
	logAttrDurationMS          = "duration_ms"
)

const (
	tableBooks   = "books"
	tableMembers = "members"
	tableLoans   = "loans"
	tableReturns = "returns"

	colBookID          = "book_id"
	colTitle           = "title"
	colAuthor          = "author"
	colPublisher       = "publisher"
	colPublicationYear = "publication_year"
	colISBN            = "isbn"
	colGenre           = "genre"
	colQuantity        = "quantity"
	colAvailable       = "available"

	colMemberID         = "member_id"
	colName             = "name"
	colPhone            = "phone"
	colAddress          = "address"
	colRegistrationDate = "registration_date"

	colLoanID     = "loan_id"
	colLoanDate   = "loan_date"
	colDueDate    = "due_date"
	colIsReturned = "is_returned"

	colReturnID    = "return_id"
	colReturnDate  = "return_date"
	colOverdueDays = "overdue_days"

	aliasBooks     = "b"
	aliasMembers   = "m"
	aliasLoans     = "l"
	aliasReturns   = "r"
	aliasLoanCount = "loan_count"

	flagFalse = 0
	flagTrue  = 1
)

// Dialect names the SQL flavor the statements are built for.
type Dialect string

const (
	// DialectSQLite builds statements for SQLite (modernc.org/sqlite or mattn/go-sqlite3).
	DialectSQLite Dialect = "sqlite3"

	// DialectPostgres builds statements for PostgreSQL (lib/pq, sqlx, or pgx).
	DialectPostgres Dialect = "postgres"
)

func (d Dialect) isSupported() bool {
	return d == DialectSQLite || d == DialectPostgres
}

// supportsReturning reports whether inserted ids are read with INSERT ... RETURNING instead of LastInsertId.
func (d Dialect) supportsReturning() bool {
	return d == DialectPostgres
}

// sqlStatement is satisfied by all goqu datasets.
type sqlStatement interface {
	ToSQL() (string, []any, error)
}

// Store persists the library's books, members, loans, and returns in a SQL database.
// It is safe for concurrent use as long as the underlying connection pool is.
type Store struct {
	db               adapters.DBAdapter
	dialect          Dialect
	logger           Logger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
	contextualLogger ContextualLogger
}

// NewStoreFromSQLDB creates a new Store using a sql.DB with optional configuration.
// This is the constructor for SQLite connections.
func NewStoreFromSQLDB(db *sql.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLAdapter(db), DialectSQLite, options...)
}

// NewStoreFromSQLX creates a new Store using a sqlx.DB with optional configuration.
func NewStoreFromSQLX(db *sqlx.DB, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	return newStore(adapters.NewSQLXAdapter(db), DialectSQLite, options...)
}

// NewStoreFromPGXPool creates a new Store using a pgx Pool with optional configuration.
// The dialect is always DialectPostgres.
func NewStoreFromPGXPool(db *pgxpool.Pool, options ...Option) (Store, error) {
	if db == nil {
		return Store{}, librarystore.ErrNilDatabaseConnection
	}

	options = append(options, WithDialect(DialectPostgres))

	return newStore(adapters.NewPGXAdapter(db), DialectPostgres, options...)
}

func newStore(db adapters.DBAdapter, dialect Dialect, options ...Option) (Store, error) {
	s := Store{
		db:      db,
		dialect: dialect,
	}

	for _, option := range options {
		if err := option(&s); err != nil {
			return Store{}, err
		}
	}

	return s, nil
}

// Dialect returns the SQL dialect the store builds statements for.
func (s Store) Dialect() Dialect {
	return s.dialect
}

// builder returns the goqu dialect wrapper for the configured dialect.
func (s Store) builder() goqu.DialectWrapper {
	return goqu.Dialect(string(s.dialect))
}

// toSQL builds a prepared statement and logs build failures.
func (s Store) toSQL(ctx context.Context, stmt sqlStatement) (string, []any, error) {
	sqlQuery, args, err := stmt.ToSQL()
	if err != nil {
		s.logErrorContext(ctx, logMsgBuildStatementFailed, err)
		return "", nil, errors.Join(librarystore.ErrBuildingQueryFailed, err)
	}

	return sqlQuery, args, nil
}

// query runs a SELECT and hands every row to scan.
func (s Store) query(
	ctx context.Context,
	db adapters.DBQuerier,
	action string,
	stmt sqlStatement,
	scan func(rows adapters.DBRows) error,
) error {

	sqlQuery, args, err := s.toSQL(ctx, stmt)
	if err != nil {
		return err
	}

	start := time.Now()
	rows, queryErr := db.Query(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if queryErr != nil {
		s.logErrorContext(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return errors.Join(librarystore.ErrQueryingFailed, classifyDriverError(queryErr))
	}
	defer s.closeRows(ctx, rows)

	for rows.Next() {
		if scanErr := scan(rows); scanErr != nil {
			s.logErrorContext(ctx, logMsgScanRowFailed, scanErr)
			return errors.Join(librarystore.ErrScanningFailed, scanErr)
		}
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return errors.Join(librarystore.ErrQueryingFailed, classifyDriverError(rowsErr))
	}

	return nil
}

// exec runs an INSERT, UPDATE, or DELETE and returns the number of affected rows.
func (s Store) exec(ctx context.Context, db adapters.DBQuerier, action string, stmt sqlStatement) (adapters.DBResult, int64, error) {
	sqlQuery, args, err := s.toSQL(ctx, stmt)
	if err != nil {
		return nil, 0, err
	}

	start := time.Now()
	result, execErr := db.Exec(ctx, sqlQuery, args...)
	s.logQueryWithDuration(ctx, sqlQuery, action, time.Since(start))

	if execErr != nil {
		s.logErrorContext(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return nil, 0, errors.Join(librarystore.ErrWritingFailed, classifyDriverError(execErr))
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		return nil, 0, errors.Join(librarystore.ErrWritingFailed, rowsAffectedErr)
	}

	return result, rowsAffected, nil
}

// insertReturningID inserts one row and returns its generated id.
// Postgres reads the id with RETURNING, SQLite with LastInsertId.
func (s Store) insertReturningID(
	ctx context.Context,
	db adapters.DBQuerier,
	action string,
	table string,
	idColumn string,
	record goqu.Record,
) (int64, error) {

	insert := s.builder().Insert(table).Rows(record).Prepared(true)

	if s.dialect.supportsReturning() {
		var id int64

		err := s.query(ctx, db, action, insert.Returning(goqu.C(idColumn)), func(rows adapters.DBRows) error {
			return rows.Scan(&id)
		})

		return id, err
	}

	result, _, err := s.exec(ctx, db, action, insert)
	if err != nil {
		return 0, err
	}

	id, idErr := result.LastInsertId()
	if idErr != nil {
		return 0, errors.Join(librarystore.ErrWritingFailed, idErr)
	}

	return id, nil
}

// count runs a SELECT COUNT(...) statement.
func (s Store) count(ctx context.Context, db adapters.DBQuerier, action string, stmt sqlStatement) (int, error) {
	var n int

	err := s.query(ctx, db, action, stmt, func(rows adapters.DBRows) error {
		return rows.Scan(&n)
	})

	return n, err
}

// inTransaction runs fn in a database transaction, committing on success and rolling back otherwise.
func (s Store) inTransaction(ctx context.Context, fn func(tx adapters.DBQuerier) error) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return errors.Join(librarystore.ErrTransactionFailed, classifyDriverError(err))
	}

	if fnErr := fn(tx); fnErr != nil {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
			s.logWarnContext(ctx, logMsgRollbackFailed, logAttrError, rollbackErr.Error())
		}

		return fnErr
	}

	if commitErr := tx.Commit(ctx); commitErr != nil {
		return errors.Join(librarystore.ErrTransactionFailed, classifyDriverError(commitErr))
	}

	return nil
}

// closeRows safely closes database rows and logs any errors.
func (s Store) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		s.logWarnContext(ctx, logMsgCloseRowsFailed, logAttrError, closeErr.Error())
	}
}
