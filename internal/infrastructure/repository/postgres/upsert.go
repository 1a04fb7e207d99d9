package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	qb "github.com/openscout/frc-sync/internal/platform/querybuilder"
)

// upsertMany writes one batch in a single transaction: insert every row,
// overwrite non-key columns on conflict (DO NOTHING when the model is all
// keys). Transient failures retry with a fresh transaction; a committed
// batch stays committed.
func upsertMany[T any](ctx context.Context, db *sqlx.DB, table string, conflictColumns []string, rows []T) error {
	if len(rows) == 0 {
		return nil
	}

	return writeRetryPolicy().Do(ctx, func() error {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin tx upsert %s: %w", table, err)
		}
		defer func() {
			_ = tx.Rollback()
		}()

		for _, row := range rows {
			query, args, err := qb.UpsertModel(table, row, conflictColumns)
			if err != nil {
				return fmt.Errorf("build upsert %s query: %w", table, err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("upsert %s row: %w", table, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit upsert %s tx: %w", table, err)
		}
		return nil
	})
}
