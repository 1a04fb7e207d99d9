package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/openscout/frc-sync/internal/domain/event"
)

type eventRowModel struct {
	Key               string         `db:"key"`
	Name              string         `db:"name"`
	EventCode         string         `db:"event_code"`
	EventType         int            `db:"event_type"`
	EventTypeString   string         `db:"event_type_string"`
	Year              int            `db:"year"`
	Week              *int           `db:"week"`
	StartDate         time.Time      `db:"start_date"`
	EndDate           time.Time      `db:"end_date"`
	City              *string        `db:"city"`
	StateProv         *string        `db:"state_prov"`
	Country           *string        `db:"country"`
	PostalCode        *string        `db:"postal_code"`
	Address           *string        `db:"address"`
	LocationName      *string        `db:"location_name"`
	Lat               *float64       `db:"lat"`
	Lng               *float64       `db:"lng"`
	Timezone          *string        `db:"timezone"`
	Website           *string        `db:"website"`
	FirstEventCode    *string        `db:"first_event_code"`
	PlayoffType       *int           `db:"playoff_type"`
	PlayoffTypeString *string        `db:"playoff_type_string"`
	DistrictKey       *string        `db:"district_key"`
	ParentEventKey    *string        `db:"parent_event_key"`
	DivisionKeys      pq.StringArray `db:"division_keys"`
}

func eventToRow(e event.Event) eventRowModel {
	return eventRowModel{
		Key:               e.Key,
		Name:              e.Name,
		EventCode:         e.EventCode,
		EventType:         e.EventType,
		EventTypeString:   e.EventTypeString,
		Year:              e.Year,
		Week:              e.Week,
		StartDate:         e.StartDate,
		EndDate:           e.EndDate,
		City:              e.City,
		StateProv:         e.StateProv,
		Country:           e.Country,
		PostalCode:        e.PostalCode,
		Address:           e.Address,
		LocationName:      e.LocationName,
		Lat:               e.Lat,
		Lng:               e.Lng,
		Timezone:          e.Timezone,
		Website:           e.Website,
		FirstEventCode:    e.FirstEventCode,
		PlayoffType:       e.PlayoffType,
		PlayoffTypeString: e.PlayoffTypeString,
		DistrictKey:       e.DistrictKey,
		ParentEventKey:    e.ParentEventKey,
		DivisionKeys:      pq.StringArray(e.DivisionKeys),
	}
}

type districtRowModel struct {
	Key          string `db:"key"`
	Abbreviation string `db:"abbreviation"`
	DisplayName  string `db:"display_name"`
	Year         int    `db:"year"`
}

type participationRowModel struct {
	EventKey string `db:"event_key"`
	TeamKey  string `db:"team_key"`
}

type scopeRowModel struct {
	Key       string    `db:"key"`
	Year      int       `db:"year"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Timezone  *string   `db:"timezone"`
}
