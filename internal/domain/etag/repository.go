package etag

import "context"

// Repository stores validator tokens per endpoint. GetBulk loads every
// record whose endpoint matches an endpoint template in one round trip.
type Repository interface {
	Get(ctx context.Context, endpoint string) (string, bool, error)
	GetBulk(ctx context.Context, template string) (map[string]string, error)
	UpsertMany(ctx context.Context, records []Record) error
}
