package postgres

import "github.com/openscout/frc-sync/internal/domain/alliance"

type allianceRowModel struct {
	EventKey                   string   `db:"event_key"`
	Name                       string   `db:"name"`
	Order                      *int     `db:"alliance_order"`
	BackupIn                   *string  `db:"backup_in"`
	BackupOut                  *string  `db:"backup_out"`
	Status                     *string  `db:"status"`
	Level                      *string  `db:"level"`
	Wins                       *int     `db:"wins"`
	Losses                     *int     `db:"losses"`
	Ties                       *int     `db:"ties"`
	CurrentLevelWins           *int     `db:"current_level_wins"`
	CurrentLevelLosses         *int     `db:"current_level_losses"`
	CurrentLevelTies           *int     `db:"current_level_ties"`
	PlayoffType                *int     `db:"playoff_type"`
	PlayoffAverage             *float64 `db:"playoff_average"`
	DoubleElimRound            *string  `db:"double_elim_round"`
	RoundRobinRank             *int     `db:"round_robin_rank"`
	AdvancedToRoundRobinFinals *bool    `db:"advanced_to_round_robin_finals"`
}

func allianceToRow(a alliance.Alliance) allianceRowModel {
	return allianceRowModel{
		EventKey:                   a.EventKey,
		Name:                       a.Name,
		Order:                      a.Order,
		BackupIn:                   a.BackupIn,
		BackupOut:                  a.BackupOut,
		Status:                     a.Status,
		Level:                      a.Level,
		Wins:                       a.Wins,
		Losses:                     a.Losses,
		Ties:                       a.Ties,
		CurrentLevelWins:           a.CurrentLevelWins,
		CurrentLevelLosses:         a.CurrentLevelLosses,
		CurrentLevelTies:           a.CurrentLevelTies,
		PlayoffType:                a.PlayoffType,
		PlayoffAverage:             a.PlayoffAverage,
		DoubleElimRound:            a.DoubleElimRound,
		RoundRobinRank:             a.RoundRobinRank,
		AdvancedToRoundRobinFinals: a.AdvancedToRoundRobinFinals,
	}
}

type allianceTeamRowModel struct {
	EventKey     string `db:"event_key"`
	AllianceName string `db:"alliance_name"`
	TeamKey      string `db:"team_key"`
	PickOrder    int    `db:"pick_order"`
}
