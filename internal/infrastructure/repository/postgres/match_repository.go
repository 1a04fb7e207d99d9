package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/openscout/frc-sync/internal/domain/match"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) UpsertMatches(ctx context.Context, matches []match.Match) error {
	rows := make([]matchRowModel, 0, len(matches))
	for _, m := range matches {
		rows = append(rows, matchToRow(m))
	}
	return upsertMany(ctx, r.db, "matches", []string{"key"}, rows)
}

func (r *MatchRepository) UpsertAlliances(ctx context.Context, alliances []match.Alliance) error {
	rows := make([]matchAllianceRowModel, 0, len(alliances))
	for _, a := range alliances {
		rows = append(rows, matchAllianceToRow(a))
	}
	return upsertMany(ctx, r.db, "match_alliances", []string{"match_key", "alliance_color"}, rows)
}

func (r *MatchRepository) UpsertAllianceTeams(ctx context.Context, teams []match.AllianceTeam) error {
	rows := make([]matchAllianceTeamRowModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, matchAllianceTeamRowModel{
			MatchKey:      t.MatchKey,
			AllianceColor: t.AllianceColor,
			TeamKey:       t.TeamKey,
			Position:      t.Position,
			IsSurrogate:   t.IsSurrogate,
			IsDQ:          t.IsDQ,
		})
	}
	return upsertMany(ctx, r.db, "match_alliance_teams", []string{"match_key", "alliance_color", "team_key"}, rows)
}
