package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverSQLite       = "sqlite"  // modernc.org/sqlite, pure Go
	DriverSQLiteCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPostgres     = "postgres"
	DriverPostgresSQLX = "sqlx"
	DriverPostgresPGX  = "pgx"
)

// Environment variables read by Load.
const (
	EnvDriver         = "LIBRARY_DB_DRIVER"
	EnvDSN            = "LIBRARY_DB_DSN"
	EnvLoanPeriodDays = "LIBRARY_LOAN_PERIOD_DAYS"
	EnvLogLevel       = "LIBRARY_LOG_LEVEL"
)

const (
	defaultDriver         = DriverSQLite
	defaultDSN            = "library.db"
	defaultBusyTimeoutMS  = 5000
	defaultLoanPeriodDays = 14
	defaultPopularLimit   = 10
	defaultSearchLimit    = 50
	defaultLogLevel       = "info"
)

var (
	ErrReadingConfigFailed = errors.New("reading the config file failed")
	ErrParsingConfigFailed = errors.New("parsing the config failed")
	ErrInvalidConfig       = errors.New("invalid config")
	ErrUnsupportedDriver   = errors.New("unsupported database driver")
)

// Config is the complete library configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Library  LibraryConfig  `yaml:"library"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig selects the driver and the data source.
// For the SQLite drivers the DSN is a file path.
type DatabaseConfig struct {
	Driver        string `yaml:"driver"`
	DSN           string `yaml:"dsn"`
	BusyTimeoutMS int    `yaml:"busy_timeout_ms"`
}

// LibraryConfig holds the business defaults.
type LibraryConfig struct {
	LoanPeriodDays int `yaml:"loan_period_days"`
	PopularLimit   int `yaml:"popular_limit"`
	SearchLimit    int `yaml:"search_limit"`
}

// LogConfig holds the log level: debug, info, warn or error.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when nothing is configured.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:        defaultDriver,
			DSN:           defaultDSN,
			BusyTimeoutMS: defaultBusyTimeoutMS,
		},
		Library: LibraryConfig{
			LoanPeriodDays: defaultLoanPeriodDays,
			PopularLimit:   defaultPopularLimit,
			SearchLimit:    defaultSearchLimit,
		},
		Log: LogConfig{Level: defaultLogLevel},
	}
}

// Load builds the configuration from the defaults, the YAML file at path (skipped when path is empty)
// and the environment, in this order. The result is validated.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an injectable environment lookup.
func LoadWithEnv(path string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Join(ErrReadingConfigFailed, err)
		}

		if err = yaml.Unmarshal(content, &cfg); err != nil {
			return Config{}, errors.Join(ErrParsingConfigFailed, err)
		}
	}

	if err := cfg.applyEnv(lookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) applyEnv(lookupEnv func(string) (string, bool)) error {
	if v, ok := lookupEnv(EnvDriver); ok && v != "" {
		c.Database.Driver = strings.ToLower(strings.TrimSpace(v))
	}

	if v, ok := lookupEnv(EnvDSN); ok && v != "" {
		c.Database.DSN = v
	}

	if v, ok := lookupEnv(EnvLoanPeriodDays); ok && v != "" {
		days, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return errors.Join(ErrParsingConfigFailed, fmt.Errorf("%s: %w", EnvLoanPeriodDays, err))
		}

		c.Library.LoanPeriodDays = days
	}

	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}

	return nil
}

// Validate checks the configuration for values the binaries cannot work with.
func (c Config) Validate() error {
	if !slices.Contains(SupportedDrivers(), c.Database.Driver) {
		return errors.Join(ErrUnsupportedDriver, fmt.Errorf("driver %q", c.Database.Driver))
	}

	if strings.TrimSpace(c.Database.DSN) == "" {
		return errors.Join(ErrInvalidConfig, errors.New("database dsn must not be empty"))
	}

	if c.Database.BusyTimeoutMS < 0 {
		return errors.Join(ErrInvalidConfig, errors.New("busy timeout must not be negative"))
	}

	if c.Library.LoanPeriodDays <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("loan period must be positive"))
	}

	if c.Library.PopularLimit <= 0 || c.Library.SearchLimit <= 0 {
		return errors.Join(ErrInvalidConfig, errors.New("limits must be positive"))
	}

	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return errors.Join(ErrInvalidConfig, fmt.Errorf("log level %q", c.Log.Level))
	}

	return nil
}

// IsSQLite reports whether the configured driver is one of the SQLite drivers.
func (c Config) IsSQLite() bool {
	return c.Database.Driver == DriverSQLite || c.Database.Driver == DriverSQLiteCGO
}

// SupportedDrivers lists the accepted values for DatabaseConfig.Driver.
func SupportedDrivers() []string {
	return []string{DriverSQLite, DriverSQLiteCGO, DriverPostgres, DriverPostgresSQLX, DriverPostgresPGX}
}
