package status

import (
	"sort"
	"sync"
	"time"
)

// RunRecord captures the outcome of the most recent run of one flow.
type RunRecord struct {
	Flow       string    `json:"flow"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Duration   string    `json:"duration"`
	Error      string    `json:"error,omitempty"`
}

// Tracker keeps the latest run record per flow for the status endpoint.
type Tracker struct {
	mu   sync.RWMutex
	last map[string]RunRecord
}

func NewTracker() *Tracker {
	return &Tracker{last: make(map[string]RunRecord)}
}

func (t *Tracker) Record(flow string, startedAt, finishedAt time.Time, runErr error) {
	record := RunRecord{
		Flow:       flow,
		StartedAt:  startedAt.UTC(),
		FinishedAt: finishedAt.UTC(),
		Duration:   finishedAt.Sub(startedAt).String(),
	}
	if runErr != nil {
		record.Error = runErr.Error()
	}

	t.mu.Lock()
	t.last[flow] = record
	t.mu.Unlock()
}

// Snapshot lists the latest record per flow, ordered by flow name.
func (t *Tracker) Snapshot() []RunRecord {
	t.mu.RLock()
	records := make([]RunRecord, 0, len(t.last))
	for _, record := range t.last {
		records = append(records, record)
	}
	t.mu.RUnlock()

	sort.Slice(records, func(i, j int) bool { return records[i].Flow < records[j].Flow })
	return records
}
