package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/openscout/frc-sync/external/tba"
	"github.com/openscout/frc-sync/internal/config"
	"github.com/openscout/frc-sync/internal/infrastructure/repository/postgres"
	"github.com/openscout/frc-sync/internal/platform/logging"
	"github.com/openscout/frc-sync/internal/platform/resilience"
	"github.com/openscout/frc-sync/internal/usecase"
)

// App owns the wired sync service and the resources behind it.
type App struct {
	Config config.Config
	Logger *logging.Logger
	DB     *sqlx.DB
	Sync   *usecase.SyncService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	client := tba.NewClient(tba.ClientConfig{
		BaseURL: cfg.TBABaseURL,
		AuthKey: cfg.TBAAuthKey,
		Timeout: cfg.TBATimeout,
		Retry: resilience.RetryPolicy{
			MaxAttempts: cfg.TBAMaxRetries,
		},
		Logger: logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TBACircuitEnabled,
			FailureThreshold: cfg.TBACircuitFailureCount,
			OpenTimeout:      cfg.TBACircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TBACircuitHalfOpenMaxReq,
		},
	})

	eventRepo := postgres.NewEventRepository(db)

	syncCfg := usecase.DefaultSyncConfig()
	syncCfg.BatchSize = cfg.SyncBatchSize
	syncCfg.TeamsMaxPages = cfg.SyncTeamsMaxPages
	syncCfg.TeamsDelay = cfg.SyncTeamsDelay
	syncCfg.EventsDelay = cfg.SyncEventsDelay
	syncCfg.DistrictsDelay = cfg.SyncDistrictsDelay
	syncCfg.EventTeamsDelay = cfg.SyncEventTeamsDelay
	syncCfg.MatchesDelay = cfg.SyncMatchesDelay
	syncCfg.RankingsDelay = cfg.SyncRankingsDelay
	syncCfg.AlliancesDelay = cfg.SyncAlliancesDelay
	syncCfg.TaskRetry.MaxAttempts = cfg.SyncTaskRetryAttempts
	syncCfg.TaskRetry.BaseDelay = cfg.SyncTaskRetryDelay
	syncCfg.FlowRetry.MaxAttempts = cfg.SyncFlowRetryAttempts
	syncCfg.FlowRetry.BaseDelay = cfg.SyncFlowRetryDelay

	syncSvc := usecase.NewSyncService(
		client,
		postgres.NewTeamRepository(db),
		eventRepo,
		postgres.NewMatchRepository(db),
		postgres.NewRankingRepository(db),
		postgres.NewAllianceRepository(db),
		postgres.NewEtagRepository(db),
		usecase.NewScopeResolver(eventRepo),
		logger,
		syncCfg,
	)

	return &App{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Sync:   syncSvc,
	}, nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

// OpenDB connects to Postgres with tracing instrumentation attached.
func OpenDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	return db, nil
}
