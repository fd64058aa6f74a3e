package config

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine"
)

// OpenStore opens the configured database and wraps it into a sqlengine.Store.
// The returned close function releases the connection pool.
func OpenStore(ctx context.Context, cfg DatabaseConfig, options ...sqlengine.Option) (sqlengine.Store, func(), error) {
	switch cfg.Driver {
	case DriverSQLite, DriverSQLiteCGO:
		db, err := OpenSQLite(ctx, cfg.Driver, cfg.DSN, cfg.BusyTimeoutMS)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromSQLDB(db, options...)
		if err != nil {
			_ = db.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case DriverPostgres:
		db, err := OpenPostgresSQLDB(ctx, cfg.DSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromSQLDB(db, append(options, sqlengine.WithDialect(sqlengine.DialectPostgres))...)
		if err != nil {
			_ = db.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case DriverPostgresSQLX:
		db, err := OpenPostgresSQLX(ctx, cfg.DSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromSQLX(db, append(options, sqlengine.WithDialect(sqlengine.DialectPostgres))...)
		if err != nil {
			_ = db.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, func() { _ = db.Close() }, nil

	case DriverPostgresPGX:
		pool, err := OpenPostgresPGXPool(ctx, cfg.DSN)
		if err != nil {
			return sqlengine.Store{}, nil, err
		}

		store, err := sqlengine.NewStoreFromPGXPool(pool, options...)
		if err != nil {
			pool.Close()
			return sqlengine.Store{}, nil, err
		}

		return store, pool.Close, nil

	default:
		return sqlengine.Store{}, nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}
