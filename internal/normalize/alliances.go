package normalize

import (
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/openscout/frc-sync/internal/domain/alliance"
)

type allianceBackupPayload struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

type allianceRecordPayload struct {
	Wins   *int `json:"wins"`
	Losses *int `json:"losses"`
	Ties   *int `json:"ties"`
}

type allianceStatusPayload struct {
	Status                     *string                `json:"status"`
	Level                      *string                `json:"level"`
	PlayoffAverage             *float64               `json:"playoff_average"`
	PlayoffType                *int                   `json:"playoff_type"`
	DoubleElimRound            *string                `json:"double_elim_round"`
	RoundRobinRank             *int                   `json:"round_robin_rank"`
	AdvancedToRoundRobinFinals *bool                  `json:"advanced_to_round_robin_finals"`
	Record                     *allianceRecordPayload `json:"record"`
	CurrentLevelRecord         *allianceRecordPayload `json:"current_level_record"`
}

type alliancePayload struct {
	Name   string                 `json:"name"`
	Backup *allianceBackupPayload `json:"backup"`
	Picks  []string               `json:"picks"`
	Status *allianceStatusPayload `json:"status"`
}

// Alliances maps one event's playoff alliances. Upstream leaves the name
// empty for numbered alliances; the 1-based list position derives both the
// "Alliance N" name and the numeric order. Picks keep their list position
// as pick order, captain first.
func Alliances(body []byte, eventKey string) ([]alliance.Alliance, []alliance.AllianceTeam, error) {
	var payload []alliancePayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode alliances payload: %w", err)
	}

	alliances := make([]alliance.Alliance, 0, len(payload))
	picks := make([]alliance.AllianceTeam, 0, len(payload)*4)

	for idx, item := range payload {
		name := item.Name
		var order *int
		if name == "" {
			n := idx + 1
			name = fmt.Sprintf("Alliance %d", n)
			order = &n
		} else if n := allianceOrderFromName(name); n > 0 {
			order = &n
		}

		row := alliance.Alliance{
			EventKey: eventKey,
			Name:     name,
			Order:    order,
		}
		if item.Backup != nil {
			if item.Backup.In != "" {
				in := item.Backup.In
				row.BackupIn = &in
			}
			if item.Backup.Out != "" {
				out := item.Backup.Out
				row.BackupOut = &out
			}
		}
		if item.Status != nil {
			row.Status = item.Status.Status
			row.Level = item.Status.Level
			row.PlayoffAverage = item.Status.PlayoffAverage
			row.PlayoffType = item.Status.PlayoffType
			row.DoubleElimRound = item.Status.DoubleElimRound
			row.RoundRobinRank = item.Status.RoundRobinRank
			row.AdvancedToRoundRobinFinals = item.Status.AdvancedToRoundRobinFinals
			if item.Status.Record != nil {
				row.Wins = item.Status.Record.Wins
				row.Losses = item.Status.Record.Losses
				row.Ties = item.Status.Record.Ties
			}
			if item.Status.CurrentLevelRecord != nil {
				row.CurrentLevelWins = item.Status.CurrentLevelRecord.Wins
				row.CurrentLevelLosses = item.Status.CurrentLevelRecord.Losses
				row.CurrentLevelTies = item.Status.CurrentLevelRecord.Ties
			}
		}
		alliances = append(alliances, row)

		for pickIdx, teamKey := range item.Picks {
			picks = append(picks, alliance.AllianceTeam{
				EventKey:     eventKey,
				AllianceName: name,
				TeamKey:      teamKey,
				PickOrder:    pickIdx + 1,
			})
		}
	}

	if err := validateFragments("alliance", alliances); err != nil {
		return nil, nil, err
	}
	if err := validateFragments("alliance team", picks); err != nil {
		return nil, nil, err
	}
	return alliances, picks, nil
}

func allianceOrderFromName(name string) int {
	var n int
	if _, err := fmt.Sscanf(name, "Alliance %d", &n); err != nil {
		return 0
	}
	return n
}
