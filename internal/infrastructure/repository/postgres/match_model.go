package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/openscout/frc-sync/internal/domain/match"
)

type matchRowModel struct {
	Key             string     `db:"key"`
	CompLevel       string     `db:"comp_level"`
	SetNumber       int        `db:"set_number"`
	MatchNumber     int        `db:"match_number"`
	WinningAlliance string     `db:"winning_alliance"`
	EventKey        string     `db:"event_key"`
	Time            *time.Time `db:"time"`
	ActualTime      *time.Time `db:"actual_time"`
	PredictedTime   *time.Time `db:"predicted_time"`
	PostResultTime  *time.Time `db:"post_result_time"`
}

func matchToRow(m match.Match) matchRowModel {
	return matchRowModel{
		Key:             m.Key,
		CompLevel:       m.CompLevel,
		SetNumber:       m.SetNumber,
		MatchNumber:     m.MatchNumber,
		WinningAlliance: m.WinningAlliance,
		EventKey:        m.EventKey,
		Time:            m.Time,
		ActualTime:      m.ActualTime,
		PredictedTime:   m.PredictedTime,
		PostResultTime:  m.PostResultTime,
	}
}

type matchAllianceRowModel struct {
	MatchKey          string         `db:"match_key"`
	AllianceColor     string         `db:"alliance_color"`
	Score             int            `db:"score"`
	TeamKeys          pq.StringArray `db:"team_keys"`
	SurrogateTeamKeys pq.StringArray `db:"surrogate_team_keys"`
	DQTeamKeys        pq.StringArray `db:"dq_team_keys"`
	ScoreBreakdown    *string        `db:"score_breakdown"`
}

func matchAllianceToRow(a match.Alliance) matchAllianceRowModel {
	return matchAllianceRowModel{
		MatchKey:          a.MatchKey,
		AllianceColor:     a.AllianceColor,
		Score:             a.Score,
		TeamKeys:          pq.StringArray(a.TeamKeys),
		SurrogateTeamKeys: pq.StringArray(a.SurrogateTeamKeys),
		DQTeamKeys:        pq.StringArray(a.DQTeamKeys),
		ScoreBreakdown:    a.ScoreBreakdown,
	}
}

type matchAllianceTeamRowModel struct {
	MatchKey      string `db:"match_key"`
	AllianceColor string `db:"alliance_color"`
	TeamKey       string `db:"team_key"`
	Position      int    `db:"position"`
	IsSurrogate   bool   `db:"is_surrogate"`
	IsDQ          bool   `db:"is_dq"`
}
