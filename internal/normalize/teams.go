package normalize

import (
	"fmt"
	"regexp"

	"github.com/bytedance/sonic"

	"github.com/openscout/frc-sync/internal/domain/team"
)

// Off-season demo teams: the reserved 9970-9999 number range plus anything
// upstream nicknamed as an off-season placeholder.
const (
	demoTeamNumberLow  = 9970
	demoTeamNumberHigh = 9999
)

var offSeasonNicknameRegex = regexp.MustCompile(`(?i)off-?season`)

type teamPayload struct {
	Key        string  `json:"key"`
	TeamNumber int     `json:"team_number"`
	Nickname   string  `json:"nickname"`
	Name       string  `json:"name"`
	SchoolName *string `json:"school_name"`
	City       *string `json:"city"`
	StateProv  *string `json:"state_prov"`
	Country    *string `json:"country"`
	PostalCode *string `json:"postal_code"`
	Website    *string `json:"website"`
	RookieYear *int    `json:"rookie_year"`
}

// Teams maps one teams page, dropping demo records before emission.
func Teams(body []byte) ([]team.Team, error) {
	var payload []teamPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode teams payload: %w", err)
	}

	teams := make([]team.Team, 0, len(payload))
	for _, item := range payload {
		if isDemoTeam(item) {
			continue
		}
		teams = append(teams, team.Team{
			Key:        item.Key,
			TeamNumber: item.TeamNumber,
			Nickname:   item.Nickname,
			Name:       item.Name,
			SchoolName: item.SchoolName,
			City:       item.City,
			StateProv:  item.StateProv,
			Country:    item.Country,
			PostalCode: item.PostalCode,
			Website:    item.Website,
			RookieYear: item.RookieYear,
		})
	}

	if err := validateFragments("team", teams); err != nil {
		return nil, err
	}
	return teams, nil
}

func isDemoTeam(item teamPayload) bool {
	if item.TeamNumber >= demoTeamNumberLow && item.TeamNumber <= demoTeamNumberHigh {
		return true
	}
	return offSeasonNicknameRegex.MatchString(item.Nickname)
}
