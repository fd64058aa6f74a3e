// Package config loads the library configuration and opens database connections.
//
// Configuration comes from an optional YAML file, overlaid with LIBRARY_* environment
// variables and finally with command line flags set by the binaries. The factory functions
// open SQLite (modernc.org/sqlite or mattn/go-sqlite3) and PostgreSQL (lib/pq, sqlx, pgx.Pool)
// connections and wrap them into a sqlengine.Store.
//
// This package is part of the shell (infrastructure) layer.
package config
