package core

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/vrsandeep/comic-sorter/internal/catalog"
	"github.com/vrsandeep/comic-sorter/internal/config"
	"github.com/vrsandeep/comic-sorter/internal/db"
	"github.com/vrsandeep/comic-sorter/internal/jobs"
	"github.com/vrsandeep/comic-sorter/internal/library"
	"github.com/vrsandeep/comic-sorter/internal/logging"
	"github.com/vrsandeep/comic-sorter/internal/lookup"
	"github.com/vrsandeep/comic-sorter/internal/resolver"
	"github.com/vrsandeep/comic-sorter/internal/series"
	"github.com/vrsandeep/comic-sorter/internal/store"
)

// ErrJournalDisabled is returned by operations that need the move journal
// when journal.path is empty.
var ErrJournalDisabled = errors.New("move journal is disabled")

// App holds the core components of the application shared by every
// command.
type App struct {
	config     *config.Config
	logger     *slog.Logger
	db         *sql.DB
	store      *store.Store
	catalog    *catalog.Catalog
	resolver   *resolver.Resolver
	detector   *series.Detector
	jobManager *jobs.JobManager
}

// New sets up and returns a new App instance. It handles loading the
// configuration from configPath (config.yml in the working directory when
// empty), building the logger, and opening the move journal.
func New(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewWithConfig(cfg, os.Stderr)
}

// NewWithConfig builds an App from an already loaded configuration. Log
// output goes to logOut.
func NewWithConfig(cfg *config.Config, logOut io.Writer) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg, logOut)
	if err != nil {
		return nil, err
	}

	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
	}

	app := &App{
		config:     cfg,
		logger:     logger,
		catalog:    cat,
		detector:   series.NewDetector(cfg.Series.Threshold, logger.With("component", "series")),
		jobManager: jobs.NewManager(logger.With("component", "jobs")),
	}

	app.resolver = resolver.New(resolver.Options{
		Catalog: cat,
		Reader:  library.NewComicInfoReader(),
		Lookup: lookup.New(lookup.Options{
			BaseURL:     cfg.Lookup.BaseURL,
			HintTerm:    cfg.Lookup.HintTerm,
			MaxResults:  cfg.Lookup.MaxResults,
			Timeout:     cfg.LookupTimeout(),
			MinInterval: cfg.LookupDelay(),
		}),
		LookupEnabled: cfg.Lookup.Enabled,
		Logger:        logger.With("component", "resolver"),
	})

	if cfg.Journal.Path != "" {
		database, err := db.Open(cfg.Journal.Path, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
		app.db = database
		app.store = store.New(database)
	}

	app.registerJobs()
	logger.Debug("core application setup complete", "journal", cfg.Journal.Path, "lookup", cfg.Lookup.Enabled)
	return app, nil
}

func (a *App) Config() *config.Config       { return a.config }
func (a *App) Logger() *slog.Logger         { return a.logger }
func (a *App) JobManager() *jobs.JobManager { return a.jobManager }
func (a *App) Catalog() *catalog.Catalog    { return a.catalog }
func (a *App) Resolver() *resolver.Resolver { return a.resolver }
func (a *App) Detector() *series.Detector   { return a.detector }
func (a *App) DB() *sql.DB                  { return a.db }

// Store returns the journal store, or ErrJournalDisabled.
func (a *App) Store() (*store.Store, error) {
	if a.store == nil {
		return nil, ErrJournalDisabled
	}
	return a.store, nil
}

// Close gracefully closes the application's resources, like the DB connection.
func (a *App) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
