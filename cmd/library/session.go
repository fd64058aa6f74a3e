package main

import (
	"context"
	"errors"
	"io"

	"go.uber.org/zap"

	"github.com/AntonStoeckl/library-exercises-go/internal/logging"
	"github.com/AntonStoeckl/library-exercises-go/internal/telemetry"
	"github.com/AntonStoeckl/library-exercises-go/library/handlers"
	"github.com/AntonStoeckl/library-exercises-go/library/shared/shell/config"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/oteladapters"
	"github.com/AntonStoeckl/library-exercises-go/librarystore/sqlengine"
)

const (
	instrumentationName = "github.com/AntonStoeckl/library-exercises-go"
	handlersScope       = instrumentationName + "/handlers"
)

// rootFlags are the persistent flags shared by all subcommands.
type rootFlags struct {
	configPath string
	driver     string
	dsn        string
	logFile    string
	verbose    bool
	stats      bool
}

// session is an open store with its handlers and the observability around it.
type session struct {
	cfg        config.Config
	store      sqlengine.Store
	handlers   handlers.Handlers
	logger     *zap.Logger
	telemetry  *telemetry.Telemetry
	closeStore func()
}

// loadConfig reads the config file and the environment, then applies the flag overrides.
func (f *rootFlags) loadConfig() (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}

	if f.driver != "" {
		cfg.Database.Driver = f.driver
	}
	if f.dsn != "" {
		cfg.Database.DSN = f.dsn
	}

	if err = cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

// openSession wires config, logging, telemetry, store and handlers.
// quiet raises the log level to warn unless --verbose or --log-file ask for more,
// so that log lines do not interleave with the interactive menu.
func openSession(ctx context.Context, flags *rootFlags, quiet bool) (*session, error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if quiet && !flags.verbose && flags.logFile == "" {
		level = "warn"
	}

	var outputPaths []string
	if flags.logFile != "" {
		outputPaths = []string{flags.logFile}
	}

	logger, err := logging.New(level, flags.verbose, outputPaths...)
	if err != nil {
		return nil, err
	}
	adapter := logging.NewAdapter(logger)

	instrumentation := handlers.Instrumentation{Logger: adapter, ContextualLogger: adapter}
	storeOptions := []sqlengine.Option{sqlengine.WithLogger(adapter), sqlengine.WithContextualLogger(adapter)}

	var tel *telemetry.Telemetry
	if flags.stats {
		tel = telemetry.New(adapter)
		metrics := oteladapters.NewMetricsCollector(tel.Meter(instrumentationName))
		tracing := oteladapters.NewTracingCollector(tel.Tracer(instrumentationName))

		forwarder := telemetry.NewLogForwarder(adapter)
		bridged := oteladapters.NewSlogBridgeLogger(instrumentationName, forwarder)

		instrumentation.ContextualLogger = oteladapters.NewOTelLogger(forwarder.Logger(handlersScope))
		instrumentation.Metrics = metrics
		instrumentation.Tracing = tracing
		storeOptions = append(storeOptions,
			sqlengine.WithMetrics(metrics),
			sqlengine.WithTracing(tracing),
			sqlengine.WithContextualLogger(bridged),
		)
	}

	store, closeStore, err := config.OpenStore(ctx, cfg.Database, storeOptions...)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	h, err := handlers.New(store, handlers.Settings{
		LoanPeriodDays: cfg.Library.LoanPeriodDays,
		PopularLimit:   cfg.Library.PopularLimit,
		SearchLimit:    cfg.Library.SearchLimit,
	}, instrumentation)
	if err != nil {
		closeStore()
		_ = logger.Sync()
		return nil, err
	}

	return &session{
		cfg:        cfg,
		store:      store,
		handlers:   h,
		logger:     logger,
		telemetry:  tel,
		closeStore: closeStore,
	}, nil
}

// close dumps the collected metrics to statsOut when --stats is set and releases everything.
func (s *session) close(ctx context.Context, statsOut io.Writer) error {
	var err error

	if s.telemetry != nil {
		err = errors.Join(
			s.telemetry.WriteMetrics(ctx, statsOut),
			s.telemetry.Shutdown(ctx),
		)
	}

	s.closeStore()
	_ = s.logger.Sync()

	return err
}
