package ranking

import "context"

// Repository persists event rankings and their vector metadata.
type Repository interface {
	UpsertRankings(ctx context.Context, rankings []Ranking) error
	UpsertEventInfos(ctx context.Context, infos []EventInfo) error
}
