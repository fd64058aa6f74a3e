// Package adapters provide database adapter implementations for the SQL library store.
//
// This package implements the adapter pattern to support multiple database libraries:
// pgx.Pool, sql.DB, and sqlx.DB. All adapters provide equivalent functionality through
// a common DBAdapter interface, including transactions, so the store works the same
// with any supported connection type.
//
// Driver-specific details stay here: pgx has no LastInsertId and its rows Close without
// an error, while the database/sql based adapters share one rows and result wrapper.
package adapters
