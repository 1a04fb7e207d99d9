package usecase

import (
	"context"
	"fmt"

	"github.com/openscout/frc-sync/internal/domain/event"
	"github.com/openscout/frc-sync/internal/normalize"
)

const bucketEventTeams = "event_teams"

// SyncEventTeams replicates the event/team participation join for every
// event in scope. Participations referencing teams outside the known
// roster are dropped, never an error.
func (s *SyncService) SyncEventTeams(ctx context.Context, tier Tier) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncEventTeams")
	defer span.End()

	eventKeys, err := s.scope.EventKeys(ctx, tier)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "starting event team sync", "tier", tier, "events", len(eventKeys))

	cachedETags, err := s.etags.GetBulk(ctx, EndpointEventTeams)
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
		endpoint := buildEndpoint(EndpointEventTeams, eventKey)

		result, err := s.fetcher.Fetch(ctx, endpoint, cachedETags[endpoint])
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if !result.NotModified {
			rows, err := normalize.EventTeams(result.Body, eventKey)
			if err != nil {
				return fmt.Errorf("normalize event teams event=%s: %w", eventKey, err)
			}

			kept := make([]event.Participation, 0, len(rows))
			for _, row := range rows {
				if _, ok := validTeams[row.TeamKey]; ok {
					kept = append(kept, row)
				}
			}
			if removed := len(rows) - len(kept); removed > 0 {
				s.logger.DebugContext(ctx, "dropped ghost participations", "event", eventKey, "count", removed)
			}

			Collect(acc, bucketEventTeams, kept)
			acc.AddValidatorUpdate(endpoint, result.ETag)
			total += len(kept)
		}

		if acc.ShouldFlush(idx+1, len(eventKeys)) {
			if err := s.flushEventTeams(ctx, acc); err != nil {
				return err
			}
		}

		if err := s.delay(ctx, s.cfg.EventTeamsDelay); err != nil {
			return err
		}
	}

	if acc.HasPending() {
		if err := s.flushEventTeams(ctx, acc); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "event team sync completed", "tier", tier, "participations", total)
	return nil
}

func (s *SyncService) flushEventTeams(ctx context.Context, acc *Accumulator) error {
	rows := Drain[event.Participation](acc, bucketEventTeams)
	if len(rows) > 0 {
		if err := s.events.UpsertParticipations(ctx, rows); err != nil {
			return fmt.Errorf("upsert %d event teams: %w", len(rows), err)
		}
	}
	return s.flushValidators(ctx, acc)
}
