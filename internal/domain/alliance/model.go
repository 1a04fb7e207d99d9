package alliance

// Alliance is one playoff alliance at an event. Upstream omits the name for
// numbered alliances; the normalizer derives "Alliance N" and Order from the
// list position in that case.
type Alliance struct {
	EventKey                   string  `validate:"required,eventkey"`
	Name                       string  `validate:"required"`
	Order                      *int    `validate:"omitempty,gte=1"`
	BackupIn                   *string `validate:"omitempty,teamkey"`
	BackupOut                  *string `validate:"omitempty,teamkey"`
	Status                     *string `validate:"omitempty,oneof=eliminated playing won"`
	Level                      *string `validate:"omitempty,oneof=qm ef qf sf f"`
	Wins                       *int    `validate:"omitempty,gte=0"`
	Losses                     *int    `validate:"omitempty,gte=0"`
	Ties                       *int    `validate:"omitempty,gte=0"`
	CurrentLevelWins           *int    `validate:"omitempty,gte=0"`
	CurrentLevelLosses         *int    `validate:"omitempty,gte=0"`
	CurrentLevelTies           *int    `validate:"omitempty,gte=0"`
	PlayoffType                *int    `validate:"omitempty,gte=0"`
	PlayoffAverage             *float64
	DoubleElimRound            *string
	RoundRobinRank             *int `validate:"omitempty,gte=1"`
	AdvancedToRoundRobinFinals *bool
}

// AllianceTeam is one team's slot on a playoff alliance. PickOrder is
// 1-based: 1 is the captain, 2 the first pick.
type AllianceTeam struct {
	EventKey     string `validate:"required,eventkey"`
	AllianceName string `validate:"required"`
	TeamKey      string `validate:"required,teamkey"`
	PickOrder    int    `validate:"gte=1"`
}
