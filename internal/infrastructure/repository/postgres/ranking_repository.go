package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openscout/frc-sync/internal/domain/ranking"
)

type RankingRepository struct {
	db *sqlx.DB
}

func NewRankingRepository(db *sqlx.DB) *RankingRepository {
	return &RankingRepository{db: db}
}

func (r *RankingRepository) UpsertRankings(ctx context.Context, rankings []ranking.Ranking) error {
	rows := make([]rankingRowModel, 0, len(rankings))
	for _, item := range rankings {
		row, err := rankingToRow(item)
		if err != nil {
			return fmt.Errorf("ranking event=%s team=%s: %w", item.EventKey, item.TeamKey, err)
		}
		rows = append(rows, row)
	}
	return upsertMany(ctx, r.db, "rankings", []string{"event_key", "team_key"}, rows)
}

func (r *RankingRepository) UpsertEventInfos(ctx context.Context, infos []ranking.EventInfo) error {
	rows := make([]rankingEventInfoRowModel, 0, len(infos))
	for _, info := range infos {
		row, err := rankingEventInfoToRow(info)
		if err != nil {
			return fmt.Errorf("ranking event info event=%s: %w", info.EventKey, err)
		}
		rows = append(rows, row)
	}
	return upsertMany(ctx, r.db, "ranking_event_infos", []string{"event_key"}, rows)
}
