package event

import "time"

// Event type enum values TBA uses for records this service never stores.
const (
	TypeUnlabeled = -1
	TypeRemote    = 7
	TypeOffseason = 99
	TypePreseason = 100
)

// Event is one competition instance, keyed yyyy[EVENT_CODE].
type Event struct {
	Key               string `validate:"required,eventkey"`
	Name              string `validate:"required"`
	EventCode         string `validate:"required"`
	EventType         int    `validate:"gte=0"`
	EventTypeString   string
	Year              int  `validate:"gte=1992"`
	Week              *int `validate:"omitempty,gte=0"`
	StartDate         time.Time
	EndDate           time.Time
	City              *string
	StateProv         *string
	Country           *string
	PostalCode        *string
	Address           *string
	LocationName      *string
	Lat               *float64 `validate:"omitempty,gte=-90,lte=90"`
	Lng               *float64 `validate:"omitempty,gte=-180,lte=180"`
	Timezone          *string
	Website           *string
	FirstEventCode    *string
	PlayoffType       *int `validate:"omitempty,gte=0"`
	PlayoffTypeString *string
	DistrictKey       *string  `validate:"omitempty,eventkey"`
	ParentEventKey    *string  `validate:"omitempty,eventkey"`
	DivisionKeys      []string `validate:"dive,eventkey"`
}

// District is a regional grouping valid for a single year.
type District struct {
	Key          string `validate:"required,eventkey"`
	Abbreviation string `validate:"required"`
	DisplayName  string `validate:"required"`
	Year         int    `validate:"gte=1992"`
}

// Participation joins an event to a team competing at it.
type Participation struct {
	EventKey string `validate:"required,eventkey"`
	TeamKey  string `validate:"required,teamkey"`
}

// ScopeRow is the slice of a stored event the scope resolver needs.
type ScopeRow struct {
	Key       string
	Year      int
	StartDate time.Time
	EndDate   time.Time
	Timezone  *string
}
