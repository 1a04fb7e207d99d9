package normalize

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/openscout/frc-sync/internal/domain/match"
)

var allianceColors = []string{"red", "blue"}

type matchAlliancePayload struct {
	Score             int      `json:"score"`
	TeamKeys          []string `json:"team_keys"`
	SurrogateTeamKeys []string `json:"surrogate_team_keys"`
	DQTeamKeys        []string `json:"dq_team_keys"`
}

type matchPayload struct {
	Key             string                          `json:"key"`
	CompLevel       string                          `json:"comp_level"`
	SetNumber       int                             `json:"set_number"`
	MatchNumber     int                             `json:"match_number"`
	WinningAlliance string                          `json:"winning_alliance"`
	EventKey        string                          `json:"event_key"`
	Time            *int64                          `json:"time"`
	ActualTime      *int64                          `json:"actual_time"`
	PredictedTime   *int64                          `json:"predicted_time"`
	PostResultTime  *int64                          `json:"post_result_time"`
	Alliances       map[string]matchAlliancePayload `json:"alliances"`
	ScoreBreakdown  map[string]json.RawMessage      `json:"score_breakdown"`
}

// Matches maps one event's match list. The color-keyed alliances map
// explodes into one Alliance per side and one AllianceTeam per participant,
// each gaining the color discriminant; participants get a 1-based station
// ordinal and surrogate/DQ flags derived from the sibling key lists.
func Matches(body []byte, eventKey string) ([]match.Match, []match.Alliance, []match.AllianceTeam, error) {
	var payload []matchPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, nil, nil, fmt.Errorf("decode matches payload: %w", err)
	}

	matches := make([]match.Match, 0, len(payload))
	alliances := make([]match.Alliance, 0, len(payload)*2)
	allianceTeams := make([]match.AllianceTeam, 0, len(payload)*6)

	for _, item := range payload {
		matches = append(matches, match.Match{
			Key:             item.Key,
			CompLevel:       item.CompLevel,
			SetNumber:       item.SetNumber,
			MatchNumber:     item.MatchNumber,
			WinningAlliance: item.WinningAlliance,
			EventKey:        eventKey,
			Time:            unixTime(item.Time),
			ActualTime:      unixTime(item.ActualTime),
			PredictedTime:   unixTime(item.PredictedTime),
			PostResultTime:  unixTime(item.PostResultTime),
		})

		for _, color := range allianceColors {
			side, ok := item.Alliances[color]
			if !ok {
				continue
			}

			alliances = append(alliances, match.Alliance{
				MatchKey:          item.Key,
				AllianceColor:     color,
				Score:             side.Score,
				TeamKeys:          side.TeamKeys,
				SurrogateTeamKeys: side.SurrogateTeamKeys,
				DQTeamKeys:        side.DQTeamKeys,
				ScoreBreakdown:    rawJSONString(item.ScoreBreakdown[color]),
			})

			surrogates := keySet(side.SurrogateTeamKeys)
			disqualified := keySet(side.DQTeamKeys)
			for position, teamKey := range side.TeamKeys {
				_, isSurrogate := surrogates[teamKey]
				_, isDQ := disqualified[teamKey]
				allianceTeams = append(allianceTeams, match.AllianceTeam{
					MatchKey:      item.Key,
					AllianceColor: color,
					TeamKey:       teamKey,
					Position:      position + 1,
					IsSurrogate:   isSurrogate,
					IsDQ:          isDQ,
				})
			}
		}
	}

	if err := validateFragments("match", matches); err != nil {
		return nil, nil, nil, err
	}
	if err := validateFragments("match alliance", alliances); err != nil {
		return nil, nil, nil, err
	}
	if err := validateFragments("match alliance team", allianceTeams); err != nil {
		return nil, nil, nil, err
	}
	return matches, alliances, allianceTeams, nil
}

func unixTime(seconds *int64) *time.Time {
	if seconds == nil || *seconds == 0 {
		return nil
	}
	t := time.Unix(*seconds, 0).UTC()
	return &t
}

func rawJSONString(raw json.RawMessage) *string {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := string(raw)
	return &s
}

func keySet(keys []string) map[string]struct{} {
	if len(keys) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}
