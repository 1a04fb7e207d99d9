package usecase

import (
	"context"
	"fmt"

	"github.com/openscout/frc-sync/internal/domain/ranking"
	"github.com/openscout/frc-sync/internal/normalize"
)

const (
	bucketRankings          = "rankings"
	bucketRankingEventInfos = "ranking_event_infos"
)

// SyncRankings replicates per-event rankings plus the one metadata row
// describing each event's ranking vectors.
func (s *SyncService) SyncRankings(ctx context.Context, tier Tier) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncRankings")
	defer span.End()

	eventKeys, err := s.scope.EventKeys(ctx, tier)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "starting ranking sync", "tier", tier, "events", len(eventKeys))

	cachedETags, err := s.etags.GetBulk(ctx, EndpointEventRankings)
	if err != nil {
		return fmt.Errorf("bulk load validators: %w", err)
	}
	validTeams, err := s.validTeamKeySet(ctx)
	if err != nil {
		return err
	}

	acc := NewAccumulator(s.cfg.BatchSize)
	total := 0
	for idx, eventKey := range eventKeys {
		endpoint := buildEndpoint(EndpointEventRankings, eventKey)

		result, err := s.fetcher.Fetch(ctx, endpoint, cachedETags[endpoint])
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if !result.NotModified {
			rankings, info, err := normalize.Rankings(result.Body, eventKey)
			if err != nil {
				return fmt.Errorf("normalize rankings event=%s: %w", eventKey, err)
			}

			kept := make([]ranking.Ranking, 0, len(rankings))
			for _, row := range rankings {
				if _, ok := validTeams[row.TeamKey]; ok {
					kept = append(kept, row)
				}
			}
			if removed := len(rankings) - len(kept); removed > 0 {
				s.logger.DebugContext(ctx, "dropped ghost rankings", "event", eventKey, "count", removed)
			}

			Collect(acc, bucketRankings, kept)
			if info != nil {
				Collect(acc, bucketRankingEventInfos, []ranking.EventInfo{*info})
			}
			acc.AddValidatorUpdate(endpoint, result.ETag)
			total += len(kept)
		}

		if acc.ShouldFlush(idx+1, len(eventKeys)) {
			if err := s.flushRankings(ctx, acc); err != nil {
				return err
			}
		}

		if err := s.delay(ctx, s.cfg.RankingsDelay); err != nil {
			return err
		}
	}

	if acc.HasPending() {
		if err := s.flushRankings(ctx, acc); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "ranking sync completed", "tier", tier, "rankings", total)
	return nil
}

func (s *SyncService) flushRankings(ctx context.Context, acc *Accumulator) error {
	infos := Drain[ranking.EventInfo](acc, bucketRankingEventInfos)
	if len(infos) > 0 {
		if err := s.rankings.UpsertEventInfos(ctx, infos); err != nil {
			return fmt.Errorf("upsert %d ranking event infos: %w", len(infos), err)
		}
	}

	rankings := Drain[ranking.Ranking](acc, bucketRankings)
	if len(rankings) > 0 {
		if err := s.rankings.UpsertRankings(ctx, rankings); err != nil {
			return fmt.Errorf("upsert %d rankings: %w", len(rankings), err)
		}
	}

	return s.flushValidators(ctx, acc)
}
