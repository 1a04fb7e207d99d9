package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	UpsertMany(ctx context.Context, teams []Team) error
	ListKeys(ctx context.Context) ([]string, error)
}
