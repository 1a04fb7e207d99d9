package normalize

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/openscout/frc-sync/internal/domain/event"
)

const dateLayout = "2006-01-02"

type districtPayload struct {
	Key          string `json:"key"`
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"display_name"`
	Year         int    `json:"year"`
}

type eventPayload struct {
	Key               string           `json:"key"`
	Name              string           `json:"name"`
	EventCode         string           `json:"event_code"`
	EventType         int              `json:"event_type"`
	EventTypeString   string           `json:"event_type_string"`
	Year              int              `json:"year"`
	Week              *int             `json:"week"`
	StartDate         string           `json:"start_date"`
	EndDate           string           `json:"end_date"`
	City              *string          `json:"city"`
	StateProv         *string          `json:"state_prov"`
	Country           *string          `json:"country"`
	PostalCode        *string          `json:"postal_code"`
	Address           *string          `json:"address"`
	LocationName      *string          `json:"location_name"`
	Lat               *float64         `json:"lat"`
	Lng               *float64         `json:"lng"`
	Timezone          *string          `json:"timezone"`
	Website           *string          `json:"website"`
	FirstEventCode    *string          `json:"first_event_code"`
	PlayoffType       *int             `json:"playoff_type"`
	PlayoffTypeString *string          `json:"playoff_type_string"`
	District          *districtPayload `json:"district"`
	ParentEventKey    *string          `json:"parent_event_key"`
	DivisionKeys      []string         `json:"division_keys"`
}

// Events maps one year's event list. Off-season record types are dropped,
// and each embedded district is lifted into its own fragment exactly once.
func Events(body []byte) ([]event.Event, []event.District, error) {
	var payload []eventPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, nil, fmt.Errorf("decode events payload: %w", err)
	}

	events := make([]event.Event, 0, len(payload))
	districts := make([]event.District, 0, 8)
	seenDistricts := make(map[string]struct{}, 8)

	for _, item := range payload {
		if isOutOfSeasonEventType(item.EventType) {
			continue
		}

		startDate, err := time.Parse(dateLayout, item.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("event %s: parse start_date %q: %w", item.Key, item.StartDate, err)
		}
		endDate, err := time.Parse(dateLayout, item.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("event %s: parse end_date %q: %w", item.Key, item.EndDate, err)
		}

		var districtKey *string
		if item.District != nil {
			key := item.District.Key
			districtKey = &key
			if _, ok := seenDistricts[key]; !ok {
				seenDistricts[key] = struct{}{}
				districts = append(districts, event.District{
					Key:          item.District.Key,
					Abbreviation: item.District.Abbreviation,
					DisplayName:  item.District.DisplayName,
					Year:         item.District.Year,
				})
			}
		}

		events = append(events, event.Event{
			Key:               item.Key,
			Name:              item.Name,
			EventCode:         item.EventCode,
			EventType:         item.EventType,
			EventTypeString:   item.EventTypeString,
			Year:              item.Year,
			Week:              item.Week,
			StartDate:         startDate,
			EndDate:           endDate,
			City:              item.City,
			StateProv:         item.StateProv,
			Country:           item.Country,
			PostalCode:        item.PostalCode,
			Address:           item.Address,
			LocationName:      item.LocationName,
			Lat:               item.Lat,
			Lng:               item.Lng,
			Timezone:          item.Timezone,
			Website:           item.Website,
			FirstEventCode:    item.FirstEventCode,
			PlayoffType:       item.PlayoffType,
			PlayoffTypeString: item.PlayoffTypeString,
			DistrictKey:       districtKey,
			ParentEventKey:    item.ParentEventKey,
			DivisionKeys:      item.DivisionKeys,
		})
	}

	if err := validateFragments("event", events); err != nil {
		return nil, nil, err
	}
	if err := validateFragments("district", districts); err != nil {
		return nil, nil, err
	}
	return events, districts, nil
}

// Districts maps the dedicated per-year district list.
func Districts(body []byte) ([]event.District, error) {
	var payload []districtPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode districts payload: %w", err)
	}

	districts := make([]event.District, 0, len(payload))
	for _, item := range payload {
		districts = append(districts, event.District{
			Key:          item.Key,
			Abbreviation: item.Abbreviation,
			DisplayName:  item.DisplayName,
			Year:         item.Year,
		})
	}

	if err := validateFragments("district", districts); err != nil {
		return nil, err
	}
	return districts, nil
}

// EventTeams maps the team list for one event into participation rows.
func EventTeams(body []byte, eventKey string) ([]event.Participation, error) {
	var payload []teamPayload
	if err := sonic.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decode event teams payload: %w", err)
	}

	rows := make([]event.Participation, 0, len(payload))
	for _, item := range payload {
		rows = append(rows, event.Participation{
			EventKey: eventKey,
			TeamKey:  item.Key,
		})
	}

	if err := validateFragments("event participation", rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func isOutOfSeasonEventType(eventType int) bool {
	switch eventType {
	case event.TypeUnlabeled, event.TypeRemote, event.TypeOffseason, event.TypePreseason:
		return true
	default:
		return false
	}
}
