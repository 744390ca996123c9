// Package seqtest provides test support for the lazy sequence
// engine: an access-monitoring source, a deterministic clock, an
// assertion layer for sequence properties, and golden-file trace
// snapshots.
//
// The central tool is the access monitor. Wrapping a slice with
// Monitor yields a seq.Indexed source that records every distinct
// position read, which turns the engine's laziness and minimal-read
// guarantees into assertable facts:
//
//	m := seqtest.Monitor([]int{1, 2, 3, 4, 5})
//	s := seq.Wrap[int](m).Filter(even).Take(2)
//	// no reads yet
//	require.Zero(t, m.DistinctReads())
//	s.Each(func(int, int) bool { return true })
//	require.Equal(t, seqtest.MinimalReadsForTake([]int{1, 2, 3, 4, 5}, even, 2), m.DistinctReads())
//
// Monitor counts distinct positions touched, not total reads, so
// repeated access to one position cannot mask a missing laziness
// guarantee elsewhere.
package seqtest
