package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/openscout/frc-sync/internal/platform/resilience"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isTransientSQLError matches failures worth retrying at call granularity:
// connection-class errors, serialization failures, and deadlocks.
func isTransientSQLError(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code.Class() == "08" {
			return true
		}
		switch pqErr.Code {
		case "40001", "40P01":
			return true
		}
	}
	return false
}

func writeRetryPolicy() resilience.RetryPolicy {
	return resilience.RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		Multiplier:  2,
		MaxDelay:    2 * time.Second,
		Retryable:   isTransientSQLError,
	}
}
