package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/hooplytics/nba-stats-api/internal/config"
	"github.com/hooplytics/nba-stats-api/internal/domain/stats"
	cacherepo "github.com/hooplytics/nba-stats-api/internal/infrastructure/repository/cache"
	"github.com/hooplytics/nba-stats-api/internal/infrastructure/repository/postgres"
	"github.com/hooplytics/nba-stats-api/internal/interfaces/httpapi"
	basecache "github.com/hooplytics/nba-stats-api/internal/platform/cache"
	"github.com/hooplytics/nba-stats-api/internal/platform/logging"
	"github.com/hooplytics/nba-stats-api/internal/usecase"
)

// App bundles the wired service: the HTTP server plus the loader so
// cmd/api can kick off the bulk load after the server starts.
type App struct {
	Server *http.Server
	Loader *usecase.LoaderService

	db *sqlx.DB
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	var statsRepo stats.Repository = postgres.NewStatsRepository(db)
	if cfg.CacheEnabled {
		statsRepo = cacherepo.NewStatsRepository(statsRepo, basecache.NewStore(cfg.CacheTTL))
	}

	statsSvc := usecase.NewStatsService(statsRepo)
	loaderSvc := usecase.NewLoaderService(statsRepo, logger, cfg.LoaderCSVPath, cfg.LoaderWorkers)

	handler := httpapi.NewHandler(statsSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		Loader: loaderSvc,
		db:     db,
	}, nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := statsDSN(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(databaseName(cfg.DBURL)),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	return db, nil
}
