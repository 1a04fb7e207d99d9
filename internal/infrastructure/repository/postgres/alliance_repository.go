package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/openscout/frc-sync/internal/domain/alliance"
)

type AllianceRepository struct {
	db *sqlx.DB
}

func NewAllianceRepository(db *sqlx.DB) *AllianceRepository {
	return &AllianceRepository{db: db}
}

func (r *AllianceRepository) UpsertAlliances(ctx context.Context, alliances []alliance.Alliance) error {
	rows := make([]allianceRowModel, 0, len(alliances))
	for _, a := range alliances {
		rows = append(rows, allianceToRow(a))
	}
	return upsertMany(ctx, r.db, "alliances", []string{"event_key", "name"}, rows)
}

func (r *AllianceRepository) UpsertAllianceTeams(ctx context.Context, teams []alliance.AllianceTeam) error {
	rows := make([]allianceTeamRowModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, allianceTeamRowModel{
			EventKey:     t.EventKey,
			AllianceName: t.AllianceName,
			TeamKey:      t.TeamKey,
			PickOrder:    t.PickOrder,
		})
	}
	return upsertMany(ctx, r.db, "alliance_teams", []string{"event_key", "alliance_name", "team_key"}, rows)
}
