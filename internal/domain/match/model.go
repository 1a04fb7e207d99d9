package match

import "time"

// Match is a single played or scheduled match. The key arrives from
// upstream as yyyy[EVENT]_[LEVEL]m[N] and is validated, never synthesized.
type Match struct {
	Key             string `validate:"required,matchkey"`
	CompLevel       string `validate:"oneof=qm ef qf sf f"`
	SetNumber       int    `validate:"gte=1"`
	MatchNumber     int    `validate:"gte=1"`
	WinningAlliance string `validate:"omitempty,oneof=red blue"`
	EventKey        string `validate:"required,eventkey"`
	Time            *time.Time
	ActualTime      *time.Time
	PredictedTime   *time.Time
	PostResultTime  *time.Time
}

// Alliance is one side of a match. Score -1 means the match is unplayed.
type Alliance struct {
	MatchKey          string   `validate:"required,matchkey"`
	AllianceColor     string   `validate:"oneof=red blue"`
	Score             int      `validate:"gte=-1"`
	TeamKeys          []string `validate:"dive,teamkey"`
	SurrogateTeamKeys []string `validate:"dive,teamkey"`
	DQTeamKeys        []string `validate:"dive,teamkey"`
	ScoreBreakdown    *string
}

// AllianceTeam is one participant slot on one side of a match. Position is
// the 1-based station ordinal within the alliance.
type AllianceTeam struct {
	MatchKey      string `validate:"required,matchkey"`
	AllianceColor string `validate:"oneof=red blue"`
	TeamKey       string `validate:"required,teamkey"`
	Position      int    `validate:"gte=1"`
	IsSurrogate   bool
	IsDQ          bool
}
