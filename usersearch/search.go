// Package usersearch looks up users by exact name with a validated, parameterized query.
package usersearch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/mysql" // dialect
)

const (
	maxTermLength = 100
	resultLimit   = 10

	logMsgSearch      = "user search executed"
	logAttrSQL        = "query"
	logAttrDurationMS = "duration_ms"
	logAttrRowCount   = "row_count"
)

var (
	// ErrInvalidSearchTerm is returned for terms that are empty, too long or contain other
	// characters than letters, digits, space, hyphen and underscore.
	ErrInvalidSearchTerm = errors.New("invalid search term")

	// ErrQueryFailed is returned when the search statement cannot be built or executed.
	ErrQueryFailed = errors.New("user search query failed")
)

// Logger receives a debug record for every executed search.
type Logger interface {
	Debug(msg string, args ...any)
}

// ValidateSearchTerm accepts 1 to 100 characters out of [A-Za-z0-9 _-].
func ValidateSearchTerm(term string) error {
	if len(term) == 0 || len(term) > maxTermLength {
		return fmt.Errorf("%w: length must be between 1 and %d characters", ErrInvalidSearchTerm, maxTermLength)
	}

	for _, c := range []byte(term) {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == ' ', c == '-', c == '_':
		default:
			return fmt.Errorf("%w: character %q is not allowed", ErrInvalidSearchTerm, c)
		}
	}

	return nil
}

// Searcher runs the user search against a database.
type Searcher struct {
	db      *sql.DB
	builder goqu.DialectWrapper
	logger  Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithDialect selects the goqu dialect used to build the statement. The default is mysql.
func WithDialect(dialect string) Option {
	return func(s *Searcher) {
		s.builder = goqu.Dialect(dialect)
	}
}

// WithLogger logs every executed statement at debug level.
func WithLogger(logger Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// NewSearcher creates a Searcher on db.
func NewSearcher(db *sql.DB, opts ...Option) Searcher {
	s := Searcher{db: db, builder: goqu.Dialect("mysql")}
	for _, opt := range opts {
		opt(&s)
	}

	return s
}

// BuildQuery returns the prepared statement and its arguments for term.
func (s Searcher) BuildQuery(term string) (string, []any, error) {
	query, args, err := s.builder.
		From("users").
		Select("name").
		Where(goqu.C("name").Eq(term)).
		Limit(resultLimit).
		Prepared(true).
		ToSQL()
	if err != nil {
		return "", nil, errors.Join(ErrQueryFailed, err)
	}

	return query, args, nil
}

// Search returns up to ten names equal to term. The term is validated before any query is sent.
func (s Searcher) Search(ctx context.Context, term string) ([]string, error) {
	if err := ValidateSearchTerm(term); err != nil {
		return nil, err
	}

	query, args, err := s.BuildQuery(term)
	if err != nil {
		return nil, err
	}

	start := time.Now()

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	defer func() { _ = rows.Close() }()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, errors.Join(ErrQueryFailed, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}

	if s.logger != nil {
		s.logger.Debug(logMsgSearch,
			logAttrSQL, query,
			logAttrRowCount, len(names),
			logAttrDurationMS, float64(time.Since(start).Microseconds())/1000.0)
	}

	return names, nil
}
