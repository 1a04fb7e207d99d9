package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/openscout/frc-sync/internal/domain/alliance"
	"github.com/openscout/frc-sync/internal/domain/etag"
	"github.com/openscout/frc-sync/internal/domain/event"
	"github.com/openscout/frc-sync/internal/domain/match"
	"github.com/openscout/frc-sync/internal/domain/ranking"
	"github.com/openscout/frc-sync/internal/domain/team"
	"github.com/openscout/frc-sync/internal/platform/logging"
	"github.com/openscout/frc-sync/internal/platform/resilience"
)

// SyncConfig carries the pacing knobs for one service instance. The delays
// are deliberate self-imposed backpressure toward the provider, applied
// after every fetch including cache hits.
type SyncConfig struct {
	BatchSize       int
	TeamsMaxPages   int
	TeamsDelay      time.Duration
	EventsDelay     time.Duration
	DistrictsDelay  time.Duration
	EventTeamsDelay time.Duration
	MatchesDelay    time.Duration
	RankingsDelay   time.Duration
	AlliancesDelay  time.Duration
	TaskRetry       resilience.RetryPolicy
	FlowRetry       resilience.RetryPolicy
}

func DefaultSyncConfig() SyncConfig {
	return SyncConfig{
		BatchSize:       50,
		TeamsMaxPages:   50,
		TeamsDelay:      2 * time.Second,
		EventsDelay:     2 * time.Second,
		DistrictsDelay:  1500 * time.Millisecond,
		EventTeamsDelay: 500 * time.Millisecond,
		MatchesDelay:    3 * time.Second,
		RankingsDelay:   500 * time.Millisecond,
		AlliancesDelay:  3 * time.Second,
		TaskRetry: resilience.RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   10 * time.Second,
			Multiplier:  1,
			MaxDelay:    10 * time.Second,
		},
		FlowRetry: resilience.RetryPolicy{
			MaxAttempts: 3,
			BaseDelay:   30 * time.Second,
			Multiplier:  1,
			MaxDelay:    30 * time.Second,
		},
	}
}

func normalizeSyncConfig(cfg SyncConfig) SyncConfig {
	defaults := DefaultSyncConfig()
	if cfg.BatchSize < 1 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.TeamsMaxPages < 1 {
		cfg.TeamsMaxPages = defaults.TeamsMaxPages
	}
	if cfg.TaskRetry.MaxAttempts < 1 {
		cfg.TaskRetry = defaults.TaskRetry
	}
	if cfg.FlowRetry.MaxAttempts < 1 {
		cfg.FlowRetry = defaults.FlowRetry
	}
	return cfg
}

// SyncService replicates TBA data into the local store, one entity type at
// a time. All orchestration is strictly sequential.
type SyncService struct {
	fetcher   Fetcher
	teams     team.Repository
	events    event.Repository
	matches   match.Repository
	rankings  ranking.Repository
	alliances alliance.Repository
	etags     etag.Repository
	scope     *ScopeResolver
	logger    *logging.Logger
	cfg       SyncConfig
}

func NewSyncService(
	fetcher Fetcher,
	teams team.Repository,
	events event.Repository,
	matches match.Repository,
	rankings ranking.Repository,
	alliances alliance.Repository,
	etags etag.Repository,
	scope *ScopeResolver,
	logger *logging.Logger,
	cfg SyncConfig,
) *SyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SyncService{
		fetcher:   fetcher,
		teams:     teams,
		events:    events,
		matches:   matches,
		rankings:  rankings,
		alliances: alliances,
		etags:     etags,
		scope:     scope,
		logger:    logger,
		cfg:       normalizeSyncConfig(cfg),
	}
}

// delay blocks for the configured inter-request pause, honoring ctx.
func (s *SyncService) delay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// validTeamKeySet loads the known roster once per orchestrator run; child
// rows referencing keys outside it are silently dropped before upsert.
func (s *SyncService) validTeamKeySet(ctx context.Context) (map[string]struct{}, error) {
	keys, err := s.teams.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list team keys: %w", err)
	}
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set, nil
}

func (s *SyncService) saveValidator(ctx context.Context, endpoint, value string) error {
	if value == "" {
		return nil
	}
	if err := s.etags.UpsertMany(ctx, []etag.Record{{Endpoint: endpoint, ETag: value}}); err != nil {
		return fmt.Errorf("save validator %s: %w", endpoint, err)
	}
	return nil
}

func (s *SyncService) flushValidators(ctx context.Context, acc *Accumulator) error {
	updates := acc.DrainValidatorUpdates()
	if len(updates) == 0 {
		return nil
	}
	if err := s.etags.UpsertMany(ctx, updates); err != nil {
		return fmt.Errorf("save %d validators: %w", len(updates), err)
	}
	return nil
}
