package alliance

import "context"

// Repository persists playoff alliances and their picks.
type Repository interface {
	UpsertAlliances(ctx context.Context, alliances []Alliance) error
	UpsertAllianceTeams(ctx context.Context, teams []AllianceTeam) error
}
