package usecase

import "context"

// Flow entrypoints. Each composes the entity orchestrators in dependency
// order: teams before anything that filters against the roster, events
// before anything event-scoped. Every task is retried with bounded attempts
// and a fixed delay; the whole flow is retried the same way, which is cheap
// to re-run because conditional fetches skip unchanged data.

func (s *SyncService) RunFull(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.RunFull")
	defer span.End()

	s.logger.InfoContext(ctx, "starting full sync flow")
	return s.cfg.FlowRetry.Do(ctx, func() error {
		if err := s.runTask(ctx, "sync_teams", s.SyncTeams); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_districts", TierFull, s.SyncDistricts); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_events", TierFull, s.SyncEvents); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_event_teams", TierFull, s.SyncEventTeams); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_matches", TierFull, s.SyncMatches); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_rankings", TierFull, s.SyncRankings); err != nil {
			return err
		}
		return s.runTierTask(ctx, "sync_alliances", TierFull, s.SyncAlliances)
	})
}

// RunLive returns early when no event is inside its active window; a live
// run has nothing to do outside competition weekends.
func (s *SyncService) RunLive(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.RunLive")
	defer span.End()

	activeEvents, err := s.scope.EventKeys(ctx, TierLive)
	if err != nil {
		return err
	}
	if len(activeEvents) == 0 {
		s.logger.InfoContext(ctx, "no active events, skipping live sync")
		return nil
	}

	s.logger.InfoContext(ctx, "starting live sync flow", "active_events", len(activeEvents))
	return s.cfg.FlowRetry.Do(ctx, func() error {
		if err := s.runTierTask(ctx, "sync_matches", TierLive, s.SyncMatches); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_rankings", TierLive, s.SyncRankings); err != nil {
			return err
		}
		return s.runTierTask(ctx, "sync_alliances", TierLive, s.SyncAlliances)
	})
}

func (s *SyncService) RunYear(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "SyncService.RunYear")
	defer span.End()

	s.logger.InfoContext(ctx, "starting year sync flow")
	return s.cfg.FlowRetry.Do(ctx, func() error {
		if err := s.runTierTask(ctx, "sync_events", TierYear, s.SyncEvents); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_event_teams", TierYear, s.SyncEventTeams); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_matches", TierYear, s.SyncMatches); err != nil {
			return err
		}
		if err := s.runTierTask(ctx, "sync_rankings", TierYear, s.SyncRankings); err != nil {
			return err
		}
		return s.runTierTask(ctx, "sync_alliances", TierYear, s.SyncAlliances)
	})
}

func (s *SyncService) runTask(ctx context.Context, name string, task func(context.Context) error) error {
	err := s.cfg.TaskRetry.Do(ctx, func() error {
		return task(ctx)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "sync task failed", "task", name, "error", err)
	}
	return err
}

func (s *SyncService) runTierTask(ctx context.Context, name string, tier Tier, task func(context.Context, Tier) error) error {
	return s.runTask(ctx, name, func(ctx context.Context) error {
		return task(ctx, tier)
	})
}
