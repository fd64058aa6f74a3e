package storewrapper

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine"
)

// Adapter type constants.
const (
	typeSQLite    = "sqlite"
	typeSQLiteCGO = "sqlite3"
	typePGXPool   = "pgx.pool"
	typeSQLDB     = "sql.db"
	typeSQLXDB    = "sqlx.db"

	envAdapterType = "LIBRARY_TEST_ADAPTER"
	envPostgresDSN = "LIBRARY_TEST_POSTGRES_DSN"

	truncateStatement = "TRUNCATE TABLE returns, loans, members, books RESTART IDENTITY CASCADE"
)

// Wrapper abstracts over the different adapter types.
type Wrapper interface {
	GetStore() sqlengine.Store
	Close()
}

// SQLiteWrapper wraps a SQLite file database.
type SQLiteWrapper struct {
	db    *sql.DB
	store sqlengine.Store
}

func (w *SQLiteWrapper) GetStore() sqlengine.Store {
	return w.store
}

func (w *SQLiteWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// PGXPoolWrapper wraps pgxpool based testing.
type PGXPoolWrapper struct {
	pool  *pgxpool.Pool
	store sqlengine.Store
}

func (w *PGXPoolWrapper) GetStore() sqlengine.Store {
	return w.store
}

func (w *PGXPoolWrapper) Close() {
	w.pool.Close()
}

// SQLDBWrapper wraps sql.DB based Postgres testing.
type SQLDBWrapper struct {
	db    *sql.DB
	store sqlengine.Store
}

func (w *SQLDBWrapper) GetStore() sqlengine.Store {
	return w.store
}

func (w *SQLDBWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// SQLXWrapper wraps sqlx.DB based Postgres testing.
type SQLXWrapper struct {
	db    *sqlx.DB
	store sqlengine.Store
}

func (w *SQLXWrapper) GetStore() sqlengine.Store {
	return w.store
}

func (w *SQLXWrapper) Close() {
	_ = w.db.Close() // ignore error
}

// CreateWrapperWithTestConfig creates a wrapper for the adapter selected by the environment,
// with the schema created and all tables empty.
func CreateWrapperWithTestConfig(t testing.TB, options ...sqlengine.Option) Wrapper {
	t.Helper()

	ctx := context.Background()
	adapterType := strings.ToLower(os.Getenv(envAdapterType))

	var wrapper Wrapper

	switch adapterType {
	case typeSQLite, typeSQLiteCGO, "":
		driver := config.DriverSQLite
		if adapterType == typeSQLiteCGO {
			driver = config.DriverSQLiteCGO
		}

		db, err := config.OpenSQLite(ctx, driver, filepath.Join(t.TempDir(), "library.db"), 5000)
		require.NoError(t, err, "error opening sqlite database in test setup")

		store, err := sqlengine.NewStoreFromSQLDB(db, options...)
		require.NoError(t, err, "error creating store")

		wrapper = &SQLiteWrapper{db: db, store: store}

	case typePGXPool:
		pool, err := config.OpenPostgresPGXPool(ctx, postgresDSN(t))
		require.NoError(t, err, "error connecting to DB pool in test setup")

		store, err := sqlengine.NewStoreFromPGXPool(pool, options...)
		require.NoError(t, err, "error creating store")

		_, err = pool.Exec(ctx, truncateStatementIfExists(ctx, store))
		require.NoError(t, err, "error cleaning up the tables")

		wrapper = &PGXPoolWrapper{pool: pool, store: store}

	case typeSQLDB:
		db, err := config.OpenPostgresSQLDB(ctx, postgresDSN(t))
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := sqlengine.NewStoreFromSQLDB(db, append(options, sqlengine.WithDialect(sqlengine.DialectPostgres))...)
		require.NoError(t, err, "error creating store")

		_, err = db.ExecContext(ctx, truncateStatementIfExists(ctx, store))
		require.NoError(t, err, "error cleaning up the tables")

		wrapper = &SQLDBWrapper{db: db, store: store}

	case typeSQLXDB:
		db, err := config.OpenPostgresSQLX(ctx, postgresDSN(t))
		require.NoError(t, err, "error connecting to DB in test setup")

		store, err := sqlengine.NewStoreFromSQLX(db, append(options, sqlengine.WithDialect(sqlengine.DialectPostgres))...)
		require.NoError(t, err, "error creating store")

		_, err = db.ExecContext(ctx, truncateStatementIfExists(ctx, store))
		require.NoError(t, err, "error cleaning up the tables")

		wrapper = &SQLXWrapper{db: db, store: store}

	default: // neither one of the known types nor empty
		panic(fmt.Sprintf("unsupported adapter type from env: %s", adapterType))
	}

	require.NoError(t, wrapper.GetStore().CreateSchema(ctx), "error creating schema in test setup")

	return wrapper
}

// truncateStatementIfExists makes sure the tables exist, so the truncate cannot fail on a fresh database.
func truncateStatementIfExists(ctx context.Context, store sqlengine.Store) string {
	_ = store.CreateSchema(ctx)

	return truncateStatement
}

func postgresDSN(t testing.TB) string {
	t.Helper()

	dsn := os.Getenv(envPostgresDSN)
	if dsn == "" {
		t.Skipf("%s is not set", envPostgresDSN)
	}

	return dsn
}
