package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openscout/frc-sync/internal/domain/event"
	qb "github.com/openscout/frc-sync/internal/platform/querybuilder"
)

type EventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) UpsertEvents(ctx context.Context, events []event.Event) error {
	rows := make([]eventRowModel, 0, len(events))
	for _, e := range events {
		rows = append(rows, eventToRow(e))
	}
	return upsertMany(ctx, r.db, "events", []string{"key"}, rows)
}

func (r *EventRepository) UpsertDistricts(ctx context.Context, districts []event.District) error {
	rows := make([]districtRowModel, 0, len(districts))
	for _, d := range districts {
		rows = append(rows, districtRowModel{
			Key:          d.Key,
			Abbreviation: d.Abbreviation,
			DisplayName:  d.DisplayName,
			Year:         d.Year,
		})
	}
	return upsertMany(ctx, r.db, "event_districts", []string{"key"}, rows)
}

func (r *EventRepository) UpsertParticipations(ctx context.Context, participations []event.Participation) error {
	rows := make([]participationRowModel, 0, len(participations))
	for _, p := range participations {
		rows = append(rows, participationRowModel{
			EventKey: p.EventKey,
			TeamKey:  p.TeamKey,
		})
	}
	return upsertMany(ctx, r.db, "event_teams", []string{"event_key", "team_key"}, rows)
}

func (r *EventRepository) ListScopeRows(ctx context.Context) ([]event.ScopeRow, error) {
	query, args, err := qb.Select("key", "year", "start_date", "end_date", "timezone").
		From("events").
		OrderBy("key").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select event scope rows query: %w", err)
	}

	var rows []scopeRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select event scope rows: %w", err)
	}

	out := make([]event.ScopeRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, event.ScopeRow{
			Key:       row.Key,
			Year:      row.Year,
			StartDate: row.StartDate,
			EndDate:   row.EndDate,
			Timezone:  row.Timezone,
		})
	}
	return out, nil
}
