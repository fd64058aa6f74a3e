package usersearch

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/go-sql-driver/mysql"
)

// Environment variables read by LoadConfigFromEnv. All of them are required.
const (
	EnvServer   = "DB_SERVER"
	EnvUser     = "DB_USER"
	EnvPassword = "DB_PASSWORD"
	EnvDatabase = "DB_NAME"
)

var (
	// ErrMissingEnv is returned when a required environment variable is unset or empty.
	ErrMissingEnv = errors.New("missing environment variable")

	// ErrConnectFailed is returned when the database cannot be opened or pinged.
	ErrConnectFailed = errors.New("connecting to the database failed")
)

// Config holds the MySQL credentials.
type Config struct {
	Server   string
	User     string
	Password string
	Database string
}

// LoadConfigFromEnv reads the credentials from the process environment.
func LoadConfigFromEnv() (Config, error) {
	return LoadConfigWithEnv(os.LookupEnv)
}

// LoadConfigWithEnv reads the credentials through lookupEnv.
func LoadConfigWithEnv(lookupEnv func(string) (string, bool)) (Config, error) {
	var cfg Config

	for _, field := range []struct {
		name   string
		target *string
	}{
		{EnvServer, &cfg.Server},
		{EnvUser, &cfg.User},
		{EnvPassword, &cfg.Password},
		{EnvDatabase, &cfg.Database},
	} {
		value, ok := lookupEnv(field.name)
		if !ok || value == "" {
			return Config{}, fmt.Errorf("%w: %s", ErrMissingEnv, field.name)
		}
		*field.target = value
	}

	return cfg, nil
}

// DSN formats the credentials as a go-sql-driver/mysql data source name.
func (c Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.Net = "tcp"
	dsn.Addr = c.Server
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.DBName = c.Database
	dsn.ParseTime = true

	return dsn.FormatDSN()
}

// Open connects to MySQL and verifies the connection.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, errors.Join(ErrConnectFailed, err)
	}

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Join(ErrConnectFailed, err)
	}

	return db, nil
}
