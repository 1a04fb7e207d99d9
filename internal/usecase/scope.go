package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/openscout/frc-sync/internal/domain/event"
)

const (
	// firstCompetitionYear is the first FRC season.
	firstCompetitionYear = 1992
	// skippedYear had no competition season.
	skippedYear = 2021
	// activeWindowBuffer pads an event's date range on both sides when
	// deciding whether it is currently running.
	activeWindowBuffer = 26 * time.Hour
)

// ScopeSource is the slice of event persistence the resolver reads.
type ScopeSource interface {
	ListScopeRows(ctx context.Context) ([]event.ScopeRow, error)
}

// ScopeResolver turns a sync tier into the ordered scope keys an
// orchestrator iterates: competition years for teams/events/districts,
// event keys for everything event-scoped.
type ScopeResolver struct {
	events ScopeSource
	now    func() time.Time
}

func NewScopeResolver(events ScopeSource) *ScopeResolver {
	return &ScopeResolver{events: events, now: time.Now}
}

// Years lists the competition years a tier covers, oldest first.
func (r *ScopeResolver) Years(tier Tier) []int {
	current := r.now().UTC().Year()
	if tier != TierFull {
		return []int{current}
	}

	years := make([]int, 0, current-firstCompetitionYear+1)
	for year := firstCompetitionYear; year <= current; year++ {
		if year == skippedYear {
			continue
		}
		years = append(years, year)
	}
	return years
}

// EventKeys lists the stored event keys inside a tier. The LIVE and YEAR
// predicates are disjoint for the current year at any instant.
func (r *ScopeResolver) EventKeys(ctx context.Context, tier Tier) ([]string, error) {
	rows, err := r.events.ListScopeRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list event scope rows: %w", err)
	}

	now := r.now()
	currentYear := now.UTC().Year()

	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		active := isActive(row, now)
		switch tier {
		case TierFull:
			if active {
				continue
			}
		case TierLive:
			if !active || row.Year != currentYear {
				continue
			}
		case TierYear:
			if active || row.Year != currentYear {
				continue
			}
		default:
			return nil, fmt.Errorf("%w: unknown sync tier %q", ErrInvalidInput, tier)
		}
		keys = append(keys, row.Key)
	}

	return keys, nil
}

// isActive reports whether now, seen as a date in the event's timezone,
// falls inside the buffered start/end window. Stored dates are midnight UTC,
// so the local date is rebuilt at midnight UTC before comparing.
func isActive(row event.ScopeRow, now time.Time) bool {
	loc := time.UTC
	if row.Timezone != nil && *row.Timezone != "" {
		if parsed, err := time.LoadLocation(*row.Timezone); err == nil {
			loc = parsed
		}
	}

	local := now.In(loc)
	nowDate := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	windowStart := row.StartDate.Add(-activeWindowBuffer)
	windowEnd := row.EndDate.Add(activeWindowBuffer)
	return !nowDate.Before(windowStart) && !nowDate.After(windowEnd)
}
