package postgres

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/openscout/frc-sync/internal/domain/ranking"
)

type rankingRowModel struct {
	EventKey      string   `db:"event_key"`
	TeamKey       string   `db:"team_key"`
	Rank          int      `db:"rank"`
	MatchesPlayed int      `db:"matches_played"`
	Wins          *int     `db:"wins"`
	Losses        *int     `db:"losses"`
	Ties          *int     `db:"ties"`
	DQ            int      `db:"dq"`
	QualAverage   *float64 `db:"qual_average"`
	SortOrders    *string  `db:"sort_orders"`
	ExtraStats    *string  `db:"extra_stats"`
}

func rankingToRow(r ranking.Ranking) (rankingRowModel, error) {
	sortOrders, err := jsonColumn(r.SortOrders)
	if err != nil {
		return rankingRowModel{}, fmt.Errorf("encode sort_orders: %w", err)
	}
	extraStats, err := jsonColumn(r.ExtraStats)
	if err != nil {
		return rankingRowModel{}, fmt.Errorf("encode extra_stats: %w", err)
	}

	return rankingRowModel{
		EventKey:      r.EventKey,
		TeamKey:       r.TeamKey,
		Rank:          r.Rank,
		MatchesPlayed: r.MatchesPlayed,
		Wins:          r.Wins,
		Losses:        r.Losses,
		Ties:          r.Ties,
		DQ:            r.DQ,
		QualAverage:   r.QualAverage,
		SortOrders:    sortOrders,
		ExtraStats:    extraStats,
	}, nil
}

type rankingEventInfoRowModel struct {
	EventKey       string  `db:"event_key"`
	SortOrderInfo  *string `db:"sort_order_info"`
	ExtraStatsInfo *string `db:"extra_stats_info"`
}

func rankingEventInfoToRow(info ranking.EventInfo) (rankingEventInfoRowModel, error) {
	sortOrderInfo, err := jsonColumn(info.SortOrderInfo)
	if err != nil {
		return rankingEventInfoRowModel{}, fmt.Errorf("encode sort_order_info: %w", err)
	}
	extraStatsInfo, err := jsonColumn(info.ExtraStatsInfo)
	if err != nil {
		return rankingEventInfoRowModel{}, fmt.Errorf("encode extra_stats_info: %w", err)
	}

	return rankingEventInfoRowModel{
		EventKey:       info.EventKey,
		SortOrderInfo:  sortOrderInfo,
		ExtraStatsInfo: extraStatsInfo,
	}, nil
}

// jsonColumn renders a slice as a JSON text column, nil when empty.
func jsonColumn[T any](values []T) (*string, error) {
	if len(values) == 0 {
		return nil, nil
	}
	encoded, err := sonic.Marshal(values)
	if err != nil {
		return nil, err
	}
	text := string(encoded)
	return &text, nil
}
