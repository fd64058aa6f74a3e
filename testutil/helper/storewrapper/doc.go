// Package storewrapper creates a sqlengine.Store for tests on the database adapter selected by
// the LIBRARY_TEST_ADAPTER environment variable.
//
// Without configuration the store runs on a fresh SQLite file (modernc.org/sqlite) in the test's
// temp directory. The PostgreSQL adapters (sql.db, sqlx.db, pgx.pool) need LIBRARY_TEST_POSTGRES_DSN
// and skip the test when it is not set.
package storewrapper
