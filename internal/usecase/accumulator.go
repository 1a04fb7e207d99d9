package usecase

import "github.com/openscout/frc-sync/internal/domain/etag"

// Accumulator buffers normalized fragments per bucket until the flush rule
// fires, so event-scoped orchestrators write in batches instead of one
// round trip per event. Validator updates ride along and are flushed with
// the data they belong to.
type Accumulator struct {
	batchSize int
	buckets   map[string][]any
	etags     []etag.Record
}

func NewAccumulator(batchSize int) *Accumulator {
	if batchSize < 1 {
		batchSize = 1
	}
	return &Accumulator{
		batchSize: batchSize,
		buckets:   make(map[string][]any),
	}
}

// ShouldFlush fires every batchSize fetch units and always on the last,
// regardless of divisibility. Index is 1-based.
func (a *Accumulator) ShouldFlush(index, total int) bool {
	return index%a.batchSize == 0 || index == total
}

func (a *Accumulator) AddValidatorUpdate(endpoint, value string) {
	if endpoint == "" || value == "" {
		return
	}
	a.etags = append(a.etags, etag.Record{Endpoint: endpoint, ETag: value})
}

func (a *Accumulator) DrainValidatorUpdates() []etag.Record {
	out := a.etags
	a.etags = nil
	return out
}

func (a *Accumulator) HasPending() bool {
	if len(a.etags) > 0 {
		return true
	}
	for _, rows := range a.buckets {
		if len(rows) > 0 {
			return true
		}
	}
	return false
}

// Collect appends typed rows into a bucket. Empty slices are a no-op.
func Collect[T any](a *Accumulator, bucket string, rows []T) {
	for _, row := range rows {
		a.buckets[bucket] = append(a.buckets[bucket], row)
	}
}

// Drain empties a bucket, converting back to the typed rows Collect stored.
// Rows of a different type are dropped; buckets are single-typed by
// construction.
func Drain[T any](a *Accumulator, bucket string) []T {
	rows := a.buckets[bucket]
	if len(rows) == 0 {
		return nil
	}
	delete(a.buckets, bucket)

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if typed, ok := row.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}
