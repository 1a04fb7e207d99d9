package ranking

// Ranking is one team's standing at one event. SortOrders and ExtraStats
// are positional vectors; SortOrderInfo rows on the sibling event info
// describe what each position means.
type Ranking struct {
	EventKey      string `validate:"required,eventkey"`
	TeamKey       string `validate:"required,teamkey"`
	Rank          int    `validate:"gte=1"`
	MatchesPlayed int    `validate:"gte=0"`
	Wins          *int   `validate:"omitempty,gte=0"`
	Losses        *int   `validate:"omitempty,gte=0"`
	Ties          *int   `validate:"omitempty,gte=0"`
	DQ            int    `validate:"gte=0"`
	QualAverage   *float64
	SortOrders    []float64
	ExtraStats    []float64
}

// SortOrderInfo names one position of a ranking vector.
type SortOrderInfo struct {
	Name      string `json:"name" validate:"required"`
	Precision int    `json:"precision" validate:"gte=0"`
}

// EventInfo holds the per-event metadata for ranking vectors.
type EventInfo struct {
	EventKey       string          `validate:"required,eventkey"`
	SortOrderInfo  []SortOrderInfo `validate:"dive"`
	ExtraStatsInfo []SortOrderInfo `validate:"dive"`
}
