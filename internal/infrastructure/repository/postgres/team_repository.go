package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openscout/frc-sync/internal/domain/team"
	qb "github.com/openscout/frc-sync/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) UpsertMany(ctx context.Context, teams []team.Team) error {
	rows := make([]teamRowModel, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, teamToRow(t))
	}
	return upsertMany(ctx, r.db, "teams", []string{"key"}, rows)
}

func (r *TeamRepository) ListKeys(ctx context.Context) ([]string, error) {
	query, args, err := qb.Select("key").From("teams").OrderBy("key").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team keys query: %w", err)
	}

	var keys []string
	if err := r.db.SelectContext(ctx, &keys, query, args...); err != nil {
		return nil, fmt.Errorf("select team keys: %w", err)
	}
	return keys, nil
}
