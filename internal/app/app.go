package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/gcamargo/footdata/external/apifootball"
	"github.com/gcamargo/footdata/internal/config"
	"github.com/gcamargo/footdata/internal/infrastructure/repository/postgres"
	"github.com/gcamargo/footdata/internal/platform/logging"
	"github.com/gcamargo/footdata/internal/usecase"
)

// App wires the crawler services against a live database and provider
// client. Close releases the database pool.
type App struct {
	Config   config.Config
	Logger   *logging.Logger
	DB       *sqlx.DB
	Backfill *usecase.BackfillService
	Replay   *usecase.ReplayService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	rawRepo := postgres.NewRawResponseRepository(db)
	checkpointRepo := postgres.NewCheckpointRepository(db)
	leagueRepo := postgres.NewLeagueRepository(db)
	teamRepo := postgres.NewTeamRepository(db)
	fixtureRepo := postgres.NewFixtureRepository(db)

	client := apifootball.NewClient(apifootball.ClientConfig{
		HTTPClient:        &http.Client{Timeout: cfg.APIFootballTimeout},
		BaseURL:           cfg.APIFootballBaseURL,
		APIKey:            cfg.APIFootballKey,
		RequestsPerMinute: cfg.APIFootballRatePerMinute,
		Logger:            logger,
	})

	captureSvc := usecase.NewCaptureService(rawRepo, logger)
	reconcileSvc := usecase.NewReconcileService(leagueRepo, teamRepo, fixtureRepo, logger)
	backfillSvc := usecase.NewBackfillService(client, captureSvc, reconcileSvc, checkpointRepo, leagueRepo, logger)
	replaySvc := usecase.NewReplayService(rawRepo, reconcileSvc, logger)

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Backfill: backfillSvc,
		Replay:   replaySvc,
	}, nil
}

func (a *App) Close() error {
	if a == nil || a.DB == nil {
		return nil
	}
	return a.DB.Close()
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)

	return db, nil
}
