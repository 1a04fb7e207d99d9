package team

// Team is one FRC team as published by The Blue Alliance. Rows are only
// ever updated in place; the key is immutable.
type Team struct {
	Key        string `validate:"required,teamkey"`
	TeamNumber int    `validate:"gt=0"`
	Nickname   string
	Name       string
	SchoolName *string
	City       *string
	StateProv  *string
	Country    *string
	PostalCode *string
	Website    *string
	RookieYear *int `validate:"omitempty,gte=1992"`
}
