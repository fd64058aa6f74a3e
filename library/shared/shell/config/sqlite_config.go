package config

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver (cgo)
	_ "modernc.org/sqlite"          // sqlite driver (pure Go)
)

var ErrOpeningDatabaseFailed = errors.New("opening the database failed")

// SQLiteDSN builds the data source name for path with foreign keys and the busy timeout switched on.
// The two drivers spell their connection parameters differently.
func SQLiteDSN(driver, path string, busyTimeoutMS int) string {
	dsn := path
	if !strings.HasPrefix(dsn, "file:") {
		dsn = "file:" + dsn
	}

	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}

	if driver == DriverSQLiteCGO {
		return fmt.Sprintf("%s%s_foreign_keys=on&_busy_timeout=%d", dsn, separator, busyTimeoutMS)
	}

	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", dsn, separator, busyTimeoutMS)
}

// OpenSQLite opens and pings a SQLite database file.
// The pool is limited to one connection, SQLite allows only one writer at a time anyway.
func OpenSQLite(ctx context.Context, driver, path string, busyTimeoutMS int) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverSQLiteCGO {
		return nil, errors.Join(ErrUnsupportedDriver, fmt.Errorf("driver %q", driver))
	}

	db, err := sql.Open(driver, SQLiteDSN(driver, path, busyTimeoutMS))
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	db.SetMaxOpenConns(1)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}
