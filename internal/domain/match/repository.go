package match

import "context"

// Repository persists matches with their alliance children.
type Repository interface {
	UpsertMatches(ctx context.Context, matches []Match) error
	UpsertAlliances(ctx context.Context, alliances []Alliance) error
	UpsertAllianceTeams(ctx context.Context, teams []AllianceTeam) error
}
