package sqlengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-exercises-go/librarystore"
)

const (
	operationCreateSchema = "create_schema"

	sqliteIDColumn   = "INTEGER PRIMARY KEY AUTOINCREMENT"
	sqliteRefColumn  = "INTEGER"
	postgresIDColumn = "BIGSERIAL PRIMARY KEY"
	postgresRefCol   = "BIGINT"

	sqlitePragmaForeignKeys = "PRAGMA foreign_keys = ON"
)

// schemaStatements returns the idempotent DDL for the configured dialect.
// The two dialects differ only in the id column definitions.
func (s Store) schemaStatements() []string {
	idColumn, refColumn := sqliteIDColumn, sqliteRefColumn
	if s.dialect == DialectPostgres {
		idColumn, refColumn = postgresIDColumn, postgresRefCol
	}

	statements := make([]string, 0, 13)

	if s.dialect == DialectSQLite {
		statements = append(statements, sqlitePragmaForeignKeys)
	}

	statements = append(statements,
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS books (
			book_id %s,
			title TEXT NOT NULL,
			author TEXT NOT NULL DEFAULT '',
			publisher TEXT NOT NULL DEFAULT '',
			publication_year INTEGER NOT NULL DEFAULT 0,
			isbn TEXT NOT NULL UNIQUE,
			genre TEXT NOT NULL DEFAULT '',
			quantity INTEGER NOT NULL DEFAULT 1 CHECK (quantity >= 0),
			available INTEGER NOT NULL DEFAULT 1 CHECK (available >= 0 AND available <= quantity)
		)`, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS members (
			member_id %s,
			name TEXT NOT NULL,
			phone TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			registration_date TEXT NOT NULL
		)`, idColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS loans (
			loan_id %s,
			book_id %s NOT NULL REFERENCES books (book_id),
			member_id %s NOT NULL REFERENCES members (member_id),
			loan_date TEXT NOT NULL,
			due_date TEXT NOT NULL,
			is_returned INTEGER NOT NULL DEFAULT 0
		)`, idColumn, refColumn, refColumn),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS returns (
			return_id %s,
			loan_id %s NOT NULL UNIQUE REFERENCES loans (loan_id),
			return_date TEXT NOT NULL,
			overdue_days INTEGER NOT NULL DEFAULT 0 CHECK (overdue_days >= 0)
		)`, idColumn, refColumn),
		`CREATE INDEX IF NOT EXISTS idx_books_title ON books (title)`,
		`CREATE INDEX IF NOT EXISTS idx_books_author ON books (author)`,
		`CREATE INDEX IF NOT EXISTS idx_books_isbn ON books (isbn)`,
		`CREATE INDEX IF NOT EXISTS idx_members_name ON members (name)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_book_id ON loans (book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_member_id ON loans (member_id)`,
		`CREATE INDEX IF NOT EXISTS idx_loans_is_returned ON loans (is_returned)`,
		`CREATE INDEX IF NOT EXISTS idx_returns_loan_id ON returns (loan_id)`,
	)

	return statements
}

// CreateSchema creates the tables and indexes if they do not exist yet.
// Calling it on an initialized database is a no-op.
func (s Store) CreateSchema(ctx context.Context) error {
	return s.observed(ctx, operationCreateSchema, func(ctx context.Context) (int, error) {
		statements := s.schemaStatements()

		for _, statement := range statements {
			start := time.Now()
			_, err := s.db.Exec(ctx, statement)
			s.logQueryWithDuration(ctx, statement, operationCreateSchema, time.Since(start))

			if err != nil {
				s.logErrorContext(ctx, logMsgDBExecFailed, err, logAttrQuery, statement)
				return 0, errors.Join(librarystore.ErrCreatingSchemaFailed, classifyDriverError(err))
			}
		}

		return len(statements), nil
	})
}
