package consumer

import "sync/atomic"

// Totals are the lifetime outcome counts of all workers of a pool
type Totals struct {
	created   atomic.Int64
	duplicate atomic.Int64
	dropped   atomic.Int64
	failed    atomic.Int64
}

// TotalsSnapshot is a point-in-time copy of Totals
type TotalsSnapshot struct {
	Created   int64 `json:"created"`
	Duplicate int64 `json:"duplicate"`
	Dropped   int64 `json:"dropped"`
	Failed    int64 `json:"failed"`
}

func (t *Totals) record(outcome Outcome) {
	switch outcome {
	case OutcomeCreated:
		t.created.Add(1)
	case OutcomeDuplicate:
		t.duplicate.Add(1)
	case OutcomeDropped:
		t.dropped.Add(1)
	case OutcomeFailed:
		t.failed.Add(1)
	}
}

// Snapshot returns the current counts
func (t *Totals) Snapshot() TotalsSnapshot {
	return TotalsSnapshot{
		Created:   t.created.Load(),
		Duplicate: t.duplicate.Load(),
		Dropped:   t.dropped.Load(),
		Failed:    t.failed.Load(),
	}
}
