package normalize

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/openscout/frc-sync/internal/domain/ranking"
)

type rankingRecordPayload struct {
	Wins   *int `json:"wins"`
	Losses *int `json:"losses"`
	Ties   *int `json:"ties"`
}

type rankingRowPayload struct {
	TeamKey       string                `json:"team_key"`
	Rank          int                   `json:"rank"`
	MatchesPlayed int                   `json:"matches_played"`
	DQ            int                   `json:"dq"`
	QualAverage   *float64              `json:"qual_average"`
	Record        *rankingRecordPayload `json:"record"`
	SortOrders    []float64             `json:"sort_orders"`
	ExtraStats    []float64             `json:"extra_stats"`
}

type sortOrderInfoPayload struct {
	Name      string `json:"name"`
	Precision int    `json:"precision"`
}

type rankingsPayload struct {
	Rankings       []rankingRowPayload    `json:"rankings"`
	SortOrderInfo  []sortOrderInfoPayload `json:"sort_order_info"`
	ExtraStatsInfo []sortOrderInfoPayload `json:"extra_stats_info"`
}

// Rankings maps one event's ranking table plus the single metadata row
// naming its vector positions. Events without rankings publish a null
// payload; that maps to no fragments at all.
func Rankings(body []byte, eventKey string) ([]ranking.Ranking, *ranking.EventInfo, error) {
	var payload *rankingsPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode rankings payload: %w", err)
	}
	if payload == nil {
		return nil, nil, nil
	}

	rankings := make([]ranking.Ranking, 0, len(payload.Rankings))
	for _, item := range payload.Rankings {
		row := ranking.Ranking{
			EventKey:      eventKey,
			TeamKey:       item.TeamKey,
			Rank:          item.Rank,
			MatchesPlayed: item.MatchesPlayed,
			DQ:            item.DQ,
			QualAverage:   item.QualAverage,
			SortOrders:    item.SortOrders,
			ExtraStats:    item.ExtraStats,
		}
		if item.Record != nil {
			row.Wins = item.Record.Wins
			row.Losses = item.Record.Losses
			row.Ties = item.Record.Ties
		}
		rankings = append(rankings, row)
	}

	info := &ranking.EventInfo{
		EventKey:       eventKey,
		SortOrderInfo:  mapSortOrderInfo(payload.SortOrderInfo),
		ExtraStatsInfo: mapSortOrderInfo(payload.ExtraStatsInfo),
	}

	if err := validateFragments("ranking", rankings); err != nil {
		return nil, nil, err
	}
	if err := validateFragments("ranking event info", []ranking.EventInfo{*info}); err != nil {
		return nil, nil, err
	}
	return rankings, info, nil
}

func mapSortOrderInfo(payload []sortOrderInfoPayload) []ranking.SortOrderInfo {
	if len(payload) == 0 {
		return nil
	}
	out := make([]ranking.SortOrderInfo, 0, len(payload))
	for _, item := range payload {
		out = append(out, ranking.SortOrderInfo{
			Name:      item.Name,
			Precision: item.Precision,
		})
	}
	return out
}
