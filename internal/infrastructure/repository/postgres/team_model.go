package postgres

import "github.com/openscout/frc-sync/internal/domain/team"

type teamRowModel struct {
	Key        string  `db:"key"`
	TeamNumber int     `db:"team_number"`
	Nickname   string  `db:"nickname"`
	Name       string  `db:"name"`
	SchoolName *string `db:"school_name"`
	City       *string `db:"city"`
	StateProv  *string `db:"state_prov"`
	Country    *string `db:"country"`
	PostalCode *string `db:"postal_code"`
	Website    *string `db:"website"`
	RookieYear *int    `db:"rookie_year"`
}

func teamToRow(t team.Team) teamRowModel {
	return teamRowModel{
		Key:        t.Key,
		TeamNumber: t.TeamNumber,
		Nickname:   t.Nickname,
		Name:       t.Name,
		SchoolName: t.SchoolName,
		City:       t.City,
		StateProv:  t.StateProv,
		Country:    t.Country,
		PostalCode: t.PostalCode,
		Website:    t.Website,
		RookieYear: t.RookieYear,
	}
}
