package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openscout/frc-sync/internal/domain/event"
)

type fakeScopeSource struct {
	rows []event.ScopeRow
	err  error
}

func (s *fakeScopeSource) ListScopeRows(ctx context.Context) ([]event.ScopeRow, error) {
	return s.rows, s.err
}

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func strPtr(v string) *string { return &v }

func newTestResolver(rows []event.ScopeRow, now time.Time) *ScopeResolver {
	resolver := NewScopeResolver(&fakeScopeSource{rows: rows})
	resolver.now = func() time.Time { return now }
	return resolver
}

func TestScopeResolver_Years(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)

	t.Run("full covers every season skipping the cancelled one", func(t *testing.T) {
		resolver := newTestResolver(nil, now)
		years := resolver.Years(TierFull)
		if len(years) != 34 {
			t.Fatalf("unexpected year count: %d", len(years))
		}
		if years[0] != 1992 {
			t.Fatalf("expected first year 1992, got %d", years[0])
		}
		if years[len(years)-1] != 2026 {
			t.Fatalf("expected last year 2026, got %d", years[len(years)-1])
		}
		for _, year := range years {
			if year == 2021 {
				t.Fatalf("expected 2021 skipped")
			}
		}
	})

	t.Run("live and year cover only the current year", func(t *testing.T) {
		resolver := newTestResolver(nil, now)
		for _, tier := range []Tier{TierLive, TierYear} {
			years := resolver.Years(tier)
			if len(years) != 1 || years[0] != 2026 {
				t.Fatalf("tier %s: unexpected years %v", tier, years)
			}
		}
	})
}

func TestScopeResolver_EventKeys(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)
	rows := []event.ScopeRow{
		{Key: "2026casj", Year: 2026, StartDate: date("2026-03-19"), EndDate: date("2026-03-21"), Timezone: strPtr("America/Los_Angeles")},
		{Key: "2026txho", Year: 2026, StartDate: date("2026-04-10"), EndDate: date("2026-04-12"), Timezone: strPtr("America/Chicago")},
		{Key: "2025cmptx", Year: 2025, StartDate: date("2025-04-16"), EndDate: date("2025-04-19"), Timezone: strPtr("America/Chicago")},
	}

	resolver := newTestResolver(rows, now)

	live, err := resolver.EventKeys(context.Background(), TierLive)
	if err != nil {
		t.Fatalf("live event keys: %v", err)
	}
	if len(live) != 1 || live[0] != "2026casj" {
		t.Fatalf("unexpected live keys: %v", live)
	}

	year, err := resolver.EventKeys(context.Background(), TierYear)
	if err != nil {
		t.Fatalf("year event keys: %v", err)
	}
	if len(year) != 1 || year[0] != "2026txho" {
		t.Fatalf("unexpected year keys: %v", year)
	}

	full, err := resolver.EventKeys(context.Background(), TierFull)
	if err != nil {
		t.Fatalf("full event keys: %v", err)
	}
	if len(full) != 2 {
		t.Fatalf("unexpected full keys: %v", full)
	}

	// No event can be picked up by both current-year tiers at once.
	seen := make(map[string]int)
	for _, key := range append(append([]string(nil), live...), year...) {
		seen[key]++
		if seen[key] > 1 {
			t.Fatalf("key %s selected by both live and year", key)
		}
	}
}

func TestScopeResolver_EventKeysPropagatesError(t *testing.T) {
	t.Parallel()

	resolver := NewScopeResolver(&fakeScopeSource{err: errors.New("db down")})
	if _, err := resolver.EventKeys(context.Background(), TierLive); err == nil {
		t.Fatalf("expected error from scope source")
	}
}

func TestScopeResolver_RejectsUnknownTier(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver([]event.ScopeRow{{Key: "2026casj", Year: 2026}}, time.Now())
	if _, err := resolver.EventKeys(context.Background(), Tier("hourly")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	row := event.ScopeRow{
		Key:       "2026casj",
		Year:      2026,
		StartDate: date("2026-03-19"),
		EndDate:   date("2026-03-21"),
		Timezone:  strPtr("America/Los_Angeles"),
	}

	t.Run("inside window", func(t *testing.T) {
		if !isActive(row, time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected active mid-event")
		}
	})

	t.Run("day before start within buffer", func(t *testing.T) {
		if !isActive(row, time.Date(2026, time.March, 18, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected active inside leading buffer")
		}
	})

	t.Run("two days before start", func(t *testing.T) {
		if isActive(row, time.Date(2026, time.March, 16, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected inactive before buffered window")
		}
	})

	t.Run("day after end within buffer", func(t *testing.T) {
		if !isActive(row, time.Date(2026, time.March, 22, 1, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected active inside trailing buffer")
		}
	})

	t.Run("well after end", func(t *testing.T) {
		if isActive(row, time.Date(2026, time.March, 24, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected inactive after buffered window")
		}
	})

	t.Run("unknown timezone falls back to utc", func(t *testing.T) {
		bad := row
		bad.Timezone = strPtr("Mars/Olympus_Mons")
		if !isActive(bad, time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected active with utc fallback")
		}
	})

	t.Run("nil timezone falls back to utc", func(t *testing.T) {
		bare := row
		bare.Timezone = nil
		if !isActive(bare, time.Date(2026, time.March, 20, 12, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected active with utc fallback")
		}
	})

	t.Run("timezone shifts the observed date", func(t *testing.T) {
		// 06:00 UTC on Mar 23 is still Mar 22 in Los Angeles, the last
		// date inside the trailing buffer.
		if !isActive(row, time.Date(2026, time.March, 23, 6, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected active while the local date lags UTC")
		}
		utcRow := row
		utcRow.Timezone = nil
		if isActive(utcRow, time.Date(2026, time.March, 23, 6, 0, 0, 0, time.UTC)) {
			t.Fatalf("expected inactive when observed in utc")
		}
	})
}
