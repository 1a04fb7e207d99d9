package event

import "context"

// Repository persists events, their districts, and team participations.
type Repository interface {
	UpsertEvents(ctx context.Context, events []Event) error
	UpsertDistricts(ctx context.Context, districts []District) error
	UpsertParticipations(ctx context.Context, rows []Participation) error
	ListScopeRows(ctx context.Context) ([]ScopeRow, error)
}
