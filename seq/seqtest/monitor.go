package seqtest

import (
	"sort"
	"sync"
)

// AccessKind distinguishes what a monitored source was asked for.
type AccessKind string

const (
	// AccessAt is a positional element read.
	AccessAt AccessKind = "at"

	// AccessLen is a length read. Length reads are tracked separately
	// and never counted as element accesses: wrapping a source reads
	// its length once without touching elements.
	AccessLen AccessKind = "len"
)

// AccessEvent is one recorded read, stamped with a logical sequence
// number so traces have a deterministic total order.
type AccessEvent struct {
	Seq  int64
	Kind AccessKind
	Pos  int // meaningful for AccessAt only
}

// MonitoredSlice wraps a backing slice as a seq.Indexed source whose
// reads are observable. It is the contract check for the engine's
// minimality guarantees: DistinctReads counts distinct positions
// touched, regardless of how often each was re-read.
type MonitoredSlice[T any] struct {
	mu       sync.Mutex
	items    []T
	touched  map[int]struct{}
	trace    []AccessEvent
	lenReads int
	clock    *DeterministicClock
}

// Monitor wraps items in an access-monitoring source. The slice is
// not copied.
func Monitor[T any](items []T) *MonitoredSlice[T] {
	return &MonitoredSlice[T]{
		items:   items,
		touched: make(map[int]struct{}),
		clock:   NewDeterministicClock(),
	}
}

// Len implements seq.Indexed. The read is recorded as a length
// access, not an element access.
func (m *MonitoredSlice[T]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lenReads++
	m.trace = append(m.trace, AccessEvent{Seq: m.clock.Next(), Kind: AccessLen})
	return len(m.items)
}

// At implements seq.Indexed, recording the position before
// delegating to the backing slice.
func (m *MonitoredSlice[T]) At(i int) T {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched[i] = struct{}{}
	m.trace = append(m.trace, AccessEvent{Seq: m.clock.Next(), Kind: AccessAt, Pos: i})
	return m.items[i]
}

// DistinctReads returns how many distinct positions have been read.
func (m *MonitoredSlice[T]) DistinctReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.touched)
}

// WasRead reports whether position i has been read at least once.
func (m *MonitoredSlice[T]) WasRead(i int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.touched[i]
	return ok
}

// Positions returns the distinct positions read, in ascending order.
func (m *MonitoredSlice[T]) Positions() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]int, 0, len(m.touched))
	for i := range m.touched {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// LenReads returns how many times the length was read.
func (m *MonitoredSlice[T]) LenReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lenReads
}

// Trace returns a copy of the ordered access trace.
func (m *MonitoredSlice[T]) Trace() []AccessEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]AccessEvent, len(m.trace))
	copy(out, m.trace)
	return out
}

// Reset forgets all recorded accesses and resets the clock, so one
// monitor can observe several drains in sequence.
func (m *MonitoredSlice[T]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.touched = make(map[int]struct{})
	m.trace = nil
	m.lenReads = 0
	m.clock.Reset()
}

// MinimalReadsForTake computes the structural minimum number of
// distinct source reads for a filter-then-take(n) chain over items:
// one read per element up to and including the n-th match. The
// minimum is chain-specific, never a constant - two matches may cost
// two reads or the whole slice depending on where the matches sit.
// Returns len(items) when fewer than n elements match.
func MinimalReadsForTake[T any](items []T, pred func(v T, i int) bool, n int) int {
	if n <= 0 {
		return 0
	}
	matches := 0
	for i, v := range items {
		if pred(v, i) {
			matches++
			if matches == n {
				return i + 1
			}
		}
	}
	return len(items)
}
