package usecase

import (
	"context"
	"fmt"

	"github.com/openscout/frc-sync/internal/domain/alliance"
	"github.com/openscout/frc-sync/internal/normalize"
)

const (
	bucketAlliances     = "alliances"
	bucketAllianceTeams = "alliance_teams"
)

// SyncAlliances replicates playoff alliance composition for every event in
// scope. Picks referencing unknown teams are dropped.
func (s *SyncService) SyncAlliances(ctx context.Context, tier Tier) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncAlliances")
	defer span.End()

	eventKeys, err := s.scope.EventKeys(ctx, tier)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "starting alliance sync", "tier", tier, "events", len(eventKeys))

	cachedETags, err := s.etags.GetBulk(ctx, EndpointEventAlliances)
	if err != nil {
		return fmt.Errorf("bulk load validators: %w", err)
	}
	validTeams, err := s.validTeamKeySet(ctx)
	if err != nil {
		return err
	}

	acc := NewAccumulator(s.cfg.BatchSize)
	totals := struct{ alliances, picks int }{}
	for idx, eventKey := range eventKeys {
		endpoint := buildEndpoint(EndpointEventAlliances, eventKey)

		result, err := s.fetcher.Fetch(ctx, endpoint, cachedETags[endpoint])
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if !result.NotModified {
			alliances, picks, err := normalize.Alliances(result.Body, eventKey)
			if err != nil {
				return fmt.Errorf("normalize alliances event=%s: %w", eventKey, err)
			}

			kept := make([]alliance.AllianceTeam, 0, len(picks))
			for _, row := range picks {
				if _, ok := validTeams[row.TeamKey]; ok {
					kept = append(kept, row)
				}
			}
			if removed := len(picks) - len(kept); removed > 0 {
				s.logger.DebugContext(ctx, "dropped ghost alliance picks", "event", eventKey, "count", removed)
			}

			Collect(acc, bucketAlliances, alliances)
			Collect(acc, bucketAllianceTeams, kept)
			acc.AddValidatorUpdate(endpoint, result.ETag)
			totals.alliances += len(alliances)
			totals.picks += len(kept)
		}

		if acc.ShouldFlush(idx+1, len(eventKeys)) {
			if err := s.flushAlliances(ctx, acc); err != nil {
				return err
			}
		}

		if err := s.delay(ctx, s.cfg.AlliancesDelay); err != nil {
			return err
		}
	}

	if acc.HasPending() {
		if err := s.flushAlliances(ctx, acc); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "alliance sync completed", "tier", tier, "alliances", totals.alliances, "picks", totals.picks)
	return nil
}

func (s *SyncService) flushAlliances(ctx context.Context, acc *Accumulator) error {
	alliances := Drain[alliance.Alliance](acc, bucketAlliances)
	if len(alliances) > 0 {
		if err := s.alliances.UpsertAlliances(ctx, alliances); err != nil {
			return fmt.Errorf("upsert %d alliances: %w", len(alliances), err)
		}
	}

	picks := Drain[alliance.AllianceTeam](acc, bucketAllianceTeams)
	if len(picks) > 0 {
		if err := s.alliances.UpsertAllianceTeams(ctx, picks); err != nil {
			return fmt.Errorf("upsert %d alliance picks: %w", len(picks), err)
		}
	}

	return s.flushValidators(ctx, acc)
}
