package seqtest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyseq/seq"
	"github.com/roach88/lazyseq/seq/seqtest"
)

func TestCheckCapability(t *testing.T) {
	s := seq.FromSlice([]int{1, 2, 3})

	assert.NoError(t, seqtest.CheckCapability(s, seq.Indexable))

	err := seqtest.CheckCapability(s.Filter(func(int, int) bool { return true }), seq.Indexable)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Assertion failed: capability")
	assert.Contains(t, err.Error(), "Expected: indexable")
	assert.Contains(t, err.Error(), "Actual: iterable-only")
}

func TestCheckElements(t *testing.T) {
	s := seq.FromSlice([]int{1, 2, 3})

	assert.NoError(t, seqtest.CheckElements(s, []int{1, 2, 3}))

	err := seqtest.CheckElements(s, []int{1, 2})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: [1 2]")
	assert.Contains(t, err.Error(), "Actual: [1 2 3]")
}

func TestCheckMinimalReads_IncludesTrace(t *testing.T) {
	m := seqtest.Monitor([]int{1, 2, 3})
	m.At(0)
	m.At(2)

	assert.NoError(t, seqtest.CheckMinimalReads(m, 2))

	err := seqtest.CheckMinimalReads(m, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Expected: 1 distinct positions")
	assert.Contains(t, err.Error(), "Actual: 2 distinct positions [0 2]")
	assert.Contains(t, err.Error(), "Access trace:")
	assert.Contains(t, err.Error(), "[1] at pos=0")
	assert.Contains(t, err.Error(), "[2] at pos=2")
}

func TestIndexRecorder(t *testing.T) {
	t.Run("records everything", func(t *testing.T) {
		r := seqtest.NewIndexRecorder[int]()
		completed := seq.FromSlice([]int{10, 20, 30}).Each(r.Consumer())

		assert.True(t, completed)
		assert.Equal(t, []int{10, 20, 30}, r.Values())
		assert.Equal(t, []int{0, 1, 2}, r.Indexes())
	})

	t.Run("stop after n", func(t *testing.T) {
		r := seqtest.NewIndexRecorder[int]()
		completed := seq.FromSlice([]int{10, 20, 30}).Each(r.StopAfter(2))

		assert.False(t, completed, "early stop must surface as an incomplete drain")
		assert.Equal(t, []int{10, 20}, r.Values())
	})
}
