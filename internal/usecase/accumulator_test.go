package usecase

import (
	"testing"

	"github.com/openscout/frc-sync/internal/domain/event"
)

func TestAccumulatorShouldFlush(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(5)

	flushed := make([]int, 0, 4)
	total := 12
	for idx := 1; idx <= total; idx++ {
		if acc.ShouldFlush(idx, total) {
			flushed = append(flushed, idx)
		}
	}

	want := []int{5, 10, 12}
	if len(flushed) != len(want) {
		t.Fatalf("flush points = %v, want %v", flushed, want)
	}
	for i := range want {
		if flushed[i] != want[i] {
			t.Fatalf("flush points = %v, want %v", flushed, want)
		}
	}
}

func TestAccumulatorShouldFlushOnExactMultiple(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(5)
	if !acc.ShouldFlush(10, 10) {
		t.Fatal("last index on a batch boundary must flush")
	}
	if acc.ShouldFlush(7, 10) {
		t.Fatal("mid-batch index must not flush")
	}
}

func TestAccumulatorCollectDrain(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(10)
	Collect(acc, "rows", []event.Participation{
		{EventKey: "2026casj", TeamKey: "frc254"},
		{EventKey: "2026casj", TeamKey: "frc1114"},
	})
	Collect(acc, "rows", []event.Participation{
		{EventKey: "2026txho", TeamKey: "frc148"},
	})

	if !acc.HasPending() {
		t.Fatal("expected pending rows after Collect")
	}

	rows := Drain[event.Participation](acc, "rows")
	if len(rows) != 3 {
		t.Fatalf("drained %d rows, want 3", len(rows))
	}
	if rows[2].TeamKey != "frc148" {
		t.Fatalf("rows out of order: %+v", rows)
	}

	if acc.HasPending() {
		t.Fatal("bucket must be empty after Drain")
	}
	if again := Drain[event.Participation](acc, "rows"); again != nil {
		t.Fatalf("second drain returned %v, want nil", again)
	}
}

func TestAccumulatorValidatorUpdates(t *testing.T) {
	t.Parallel()

	acc := NewAccumulator(10)
	acc.AddValidatorUpdate("", "etag")
	acc.AddValidatorUpdate("/event/2026casj/teams", "")
	if acc.HasPending() {
		t.Fatal("empty endpoint or value must be a no-op")
	}

	acc.AddValidatorUpdate("/event/2026casj/teams", `W/"abc"`)
	if !acc.HasPending() {
		t.Fatal("expected pending validator update")
	}

	updates := acc.DrainValidatorUpdates()
	if len(updates) != 1 || updates[0].Endpoint != "/event/2026casj/teams" {
		t.Fatalf("unexpected updates: %+v", updates)
	}
	if acc.HasPending() {
		t.Fatal("drain must clear validator updates")
	}
}
