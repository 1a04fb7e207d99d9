package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/openscout/frc-sync/internal/normalize"
)

// SyncEvents replicates events year by year. Districts embedded in event
// payloads are lifted and written first so district references resolve.
func (s *SyncService) SyncEvents(ctx context.Context, tier Tier) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncEvents")
	defer span.End()

	years := s.scope.Years(tier)
	s.logger.InfoContext(ctx, "starting event sync", "tier", tier, "years", len(years))

	totalEvents := 0
	totalDistricts := 0
	for _, year := range years {
		endpoint := buildEndpoint(EndpointEventsYear, strconv.Itoa(year))

		cached, _, err := s.etags.Get(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("load validator %s: %w", endpoint, err)
		}

		result, err := s.fetcher.Fetch(ctx, endpoint, cached)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if result.NotModified {
			s.logger.DebugContext(ctx, "cache hit for events year", "year", year)
			if err := s.delay(ctx, s.cfg.EventsDelay); err != nil {
				return err
			}
			continue
		}

		events, districts, err := normalize.Events(result.Body)
		if err != nil {
			return fmt.Errorf("normalize events year=%d: %w", year, err)
		}

		if len(districts) > 0 {
			if err := s.events.UpsertDistricts(ctx, districts); err != nil {
				return fmt.Errorf("upsert districts year=%d: %w", year, err)
			}
			totalDistricts += len(districts)
		}
		if len(events) > 0 {
			if err := s.events.UpsertEvents(ctx, events); err != nil {
				return fmt.Errorf("upsert events year=%d: %w", year, err)
			}
			totalEvents += len(events)
			s.logger.InfoContext(ctx, "upserted events for year", "year", year, "events", len(events), "districts", len(districts))
		}

		if err := s.saveValidator(ctx, endpoint, result.ETag); err != nil {
			return err
		}

		if err := s.delay(ctx, s.cfg.EventsDelay); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "event sync completed", "tier", tier, "events", totalEvents, "districts", totalDistricts)
	return nil
}

// SyncDistricts replicates the per-year district list. Mostly redundant
// with the districts lifted from event payloads, but the dedicated endpoint
// also carries districts that have no events yet.
func (s *SyncService) SyncDistricts(ctx context.Context, tier Tier) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.SyncDistricts")
	defer span.End()

	years := s.scope.Years(tier)
	s.logger.InfoContext(ctx, "starting district sync", "tier", tier, "years", len(years))

	total := 0
	for _, year := range years {
		endpoint := buildEndpoint(EndpointDistrictsYear, strconv.Itoa(year))

		cached, _, err := s.etags.Get(ctx, endpoint)
		if err != nil {
			return fmt.Errorf("load validator %s: %w", endpoint, err)
		}

		result, err := s.fetcher.Fetch(ctx, endpoint, cached)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", endpoint, err)
		}

		if result.NotModified {
			s.logger.DebugContext(ctx, "cache hit for districts year", "year", year)
			if err := s.delay(ctx, s.cfg.DistrictsDelay); err != nil {
				return err
			}
			continue
		}

		districts, err := normalize.Districts(result.Body)
		if err != nil {
			return fmt.Errorf("normalize districts year=%d: %w", year, err)
		}

		if len(districts) > 0 {
			if err := s.events.UpsertDistricts(ctx, districts); err != nil {
				return fmt.Errorf("upsert districts year=%d: %w", year, err)
			}
			total += len(districts)
			s.logger.InfoContext(ctx, "upserted districts for year", "year", year, "count", len(districts))
		}

		if err := s.saveValidator(ctx, endpoint, result.ETag); err != nil {
			return err
		}

		if err := s.delay(ctx, s.cfg.DistrictsDelay); err != nil {
			return err
		}
	}

	s.logger.InfoContext(ctx, "district sync completed", "tier", tier, "districts", total)
	return nil
}
