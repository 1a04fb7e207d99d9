package usecase

import (
	"context"
	"fmt"

	"github.com/openscout/frc-sync/internal/domain/match"
	"github.com/openscout/frc-sync/internal/normalize"
)

const (
	bucketMatches            = "matches"
	bucketMatchAlliances     = "match_alliances"
	bucketMatchAllianceTeams = "match_alliance_teams"
)

// SyncMatches replicates matches with their alliance children for every
// event in scope. Participant rows for unknown teams are dropped; the
// alliance rows themselves are kept so scores survive roster gaps.
func (s *SyncService) SyncMatches(ctx context.Context, tier Tier) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncMatches")
	defer span.End()

	eventKeys, err := s.scope.EventKeys(ctx, tier)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "starting match sync", "tier", tier, "events", len(eventKeys))

	cachedETags, err := s.etags.GetBulk(ctx, EndpointEventMatches)
	if err != nil {
		return fmt.Errorf("bulk load validators: %w", err)
	}
	validTeams, err := s.validTeamKeySet(ctx)
	if err != nil {
		return err
	}

	acc := NewAccumulator(s.cfg.BatchSize)
	totals := struct{ matches, alliances, allianceTeams int }{}
	for idx, eventKey := range eventKeys {
		endpoint := buildEndpoint(EndpointEventMatches, eventKey)

		result, err := s.fetcher.Fetch(ctx, endpoint, cachedETags[endpoint])
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if !result.NotModified {
			matches, alliances, allianceTeams, err := normalize.Matches(result.Body, eventKey)
			if err != nil {
				return fmt.Errorf("normalize matches event=%s: %w", eventKey, err)
			}

			kept := make([]match.AllianceTeam, 0, len(allianceTeams))
			for _, row := range allianceTeams {
				if _, ok := validTeams[row.TeamKey]; ok {
					kept = append(kept, row)
				}
			}
			if removed := len(allianceTeams) - len(kept); removed > 0 {
				s.logger.DebugContext(ctx, "dropped ghost match participants", "event", eventKey, "count", removed)
			}

			Collect(acc, bucketMatches, matches)
			Collect(acc, bucketMatchAlliances, alliances)
			Collect(acc, bucketMatchAllianceTeams, kept)
			acc.AddValidatorUpdate(endpoint, result.ETag)
			totals.matches += len(matches)
			totals.alliances += len(alliances)
			totals.allianceTeams += len(kept)
		}

		if acc.ShouldFlush(idx+1, len(eventKeys)) {
			if err := s.flushMatches(ctx, acc); err != nil {
				return err
			}
		}

		if err := s.delay(ctx, s.cfg.MatchesDelay); err != nil {
			return err
		}
	}

	if acc.HasPending() {
		if err := s.flushMatches(ctx, acc); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "match sync completed", "tier", tier,
		"matches", totals.matches, "match_alliances", totals.alliances, "match_alliance_teams", totals.allianceTeams)
	return nil
}

// flushMatches writes parents before children so declarative references
// stay satisfied within the flush.
func (s *SyncService) flushMatches(ctx context.Context, acc *Accumulator) error {
	matches := Drain[match.Match](acc, bucketMatches)
	if len(matches) > 0 {
		if err := s.matches.UpsertMatches(ctx, matches); err != nil {
			return fmt.Errorf("upsert %d matches: %w", len(matches), err)
		}
	}

	alliances := Drain[match.Alliance](acc, bucketMatchAlliances)
	if len(alliances) > 0 {
		if err := s.matches.UpsertAlliances(ctx, alliances); err != nil {
			return fmt.Errorf("upsert %d match alliances: %w", len(alliances), err)
		}
	}

	allianceTeams := Drain[match.AllianceTeam](acc, bucketMatchAllianceTeams)
	if len(allianceTeams) > 0 {
		if err := s.matches.UpsertAllianceTeams(ctx, allianceTeams); err != nil {
			return fmt.Errorf("upsert %d match alliance teams: %w", len(allianceTeams), err)
		}
	}

	return s.flushValidators(ctx, acc)
}
