package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy_Do(t *testing.T) {
	t.Parallel()

	t.Run("succeeds after transient failures", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Millisecond, Multiplier: 1, MaxDelay: time.Millisecond}
		attempts := 0
		err := policy.Do(context.Background(), func() error {
			attempts++
			if attempts < 3 {
				return errors.New("transient")
			}
			return nil
		})
		if err != nil {
			t.Fatalf("do: %v", err)
		}
		if attempts != 3 {
			t.Fatalf("unexpected attempts: %d", attempts)
		}
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		t.Parallel()

		policy := RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond, Multiplier: 1, MaxDelay: time.Millisecond}
		wantErr := errors.New("still broken")
		attempts := 0
		err := policy.Do(context.Background(), func() error {
			attempts++
			return wantErr
		})
		if !errors.Is(err, wantErr) {
			t.Fatalf("expected final error, got %v", err)
		}
		if attempts != 2 {
			t.Fatalf("unexpected attempts: %d", attempts)
		}
	})

	t.Run("stops on non-retryable error", func(t *testing.T) {
		t.Parallel()

		permanent := errors.New("permanent")
		policy := RetryPolicy{
			MaxAttempts: 5,
			BaseDelay:   time.Millisecond,
			Multiplier:  1,
			MaxDelay:    time.Millisecond,
			Retryable:   func(err error) bool { return !errors.Is(err, permanent) },
		}
		attempts := 0
		err := policy.Do(context.Background(), func() error {
			attempts++
			return permanent
		})
		if !errors.Is(err, permanent) {
			t.Fatalf("expected permanent error, got %v", err)
		}
		if attempts != 1 {
			t.Fatalf("unexpected attempts: %d", attempts)
		}
	})

	t.Run("honors context cancellation between attempts", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		policy := RetryPolicy{MaxAttempts: 3, BaseDelay: time.Hour, Multiplier: 1, MaxDelay: time.Hour}
		attempts := 0
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		err := policy.Do(ctx, func() error {
			attempts++
			return errors.New("transient")
		})
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
		if attempts != 1 {
			t.Fatalf("unexpected attempts: %d", attempts)
		}
	})
}

func TestNormalizeRetryPolicy(t *testing.T) {
	t.Parallel()

	got := NormalizeRetryPolicy(RetryPolicy{})
	want := DefaultRetryPolicy()
	if got.MaxAttempts != want.MaxAttempts || got.BaseDelay != want.BaseDelay ||
		got.Multiplier != want.Multiplier || got.MaxDelay != want.MaxDelay {
		t.Fatalf("unexpected normalized policy: %+v", got)
	}

	custom := NormalizeRetryPolicy(RetryPolicy{MaxAttempts: 7, BaseDelay: time.Second, Multiplier: 3, MaxDelay: time.Minute})
	if custom.MaxAttempts != 7 || custom.BaseDelay != time.Second || custom.Multiplier != 3 || custom.MaxDelay != time.Minute {
		t.Fatalf("expected custom values preserved: %+v", custom)
	}
}
