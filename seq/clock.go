package seq

import "sync/atomic"

// Clock is a monotonic logical clock used by the Scheduler to stamp
// drain steps. Logical sequence numbers, never wall-clock time, order
// the cooperative interleaving, which keeps it deterministic and
// cheap to assert on in tests.
//
// Thread-safety: safe for concurrent use (atomic operations), though
// the scheduler's single-goroutine loop is normally the only caller
// of Next.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0; the first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next sequence number and advances the clock.
// Each call returns a unique, strictly increasing value.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
