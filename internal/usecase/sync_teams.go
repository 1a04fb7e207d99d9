package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/openscout/frc-sync/internal/normalize"
)

// SyncTeams walks the paged team list until the first fresh empty page.
// TeamsMaxPages is a safety bound only; the break below is the real exit.
func (s *SyncService) SyncTeams(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncTeams")
	defer span.End()

	s.logger.InfoContext(ctx, "starting team sync")

	total := 0
	for page := 0; page < s.cfg.TeamsMaxPages; page++ {
		endpoint := buildEndpoint(EndpointTeamsPage, strconv.Itoa(page))

		cached, _, err := s.etags.Get(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("load validator %s: %w", endpoint, err)
		}

		result, err := s.fetcher.Fetch(ctx, endpoint, cached)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if result.NotModified {
			s.logger.DebugContext(ctx, "cache hit for teams page", "page", page)
			if err := s.delay(ctx, s.cfg.TeamsDelay); err != nil {
				return err
			}
			continue
		}

		teams, err := normalize.Teams(result.Body)
		if err != nil {
			return fmt.Errorf("normalize teams page=%d: %w", page, err)
		}

		if len(teams) == 0 {
			s.logger.InfoContext(ctx, "reached end of teams data", "page", page)
			break
		}

		if err := s.teams.UpsertMany(ctx, teams); err != nil {
			return fmt.Errorf("upsert teams page=%d: %w", page, err)
		}
		total += len(teams)
		s.logger.InfoContext(ctx, "upserted teams page", "page", page, "count", len(teams))

		if err := s.saveValidator(ctx, endpoint, result.ETag); err != nil {
			return err
		}

		if err := s.delay(ctx, s.cfg.TeamsDelay); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "team sync completed", "teams", total)
	return nil
}
