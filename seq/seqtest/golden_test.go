package seqtest_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyseq/seq"
	"github.com/roach88/lazyseq/seq/seqtest"
)

// Golden traces pin down the exact read pattern of a chain, not just
// the distinct-read count: a regression that reads the right number
// of positions in the wrong order still fails the snapshot.

func TestGolden_FilterTakeTrace(t *testing.T) {
	m := seqtest.Monitor([]int{1, 2, 3, 4, 5})

	completed := seq.Wrap[int](m).
		Filter(func(v, _ int) bool { return v%2 == 0 }).
		Take(2).
		Each(func(int, int) bool { return true })
	require.True(t, completed)

	seqtest.VerifyTrace(t, "filter_take_minimal", m)
}

func TestGolden_IndexableGetTrace(t *testing.T) {
	m := seqtest.Monitor([]int{1, 2, 3, 4, 5})

	v, err := seq.Wrap[int](m).Map(func(v, _ int) int { return v * 2 }).Get(1)
	require.NoError(t, err)
	require.Equal(t, 4, v)

	seqtest.VerifyTrace(t, "indexable_get", m)
}
