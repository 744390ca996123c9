package seq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/lazyseq/seq"
	"github.com/roach88/lazyseq/seq/seqtest"
)

func isEven(v, _ int) bool { return v%2 == 0 }

func TestMap(t *testing.T) {
	t.Run("preserves indexability", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2, 3}).Map(func(v, _ int) int { return v * 2 })

		seqtest.AssertCapability(t, s, seq.Indexable)

		n, ok := s.Len()
		require.True(t, ok)
		assert.Equal(t, 3, n)

		v, err := s.Get(1)
		require.NoError(t, err)
		assert.Equal(t, 4, v)
	})

	t.Run("get reads exactly one source position", func(t *testing.T) {
		m := seqtest.Monitor([]int{1, 2, 3, 4, 5})
		s := seq.Wrap[int](m).
			Map(func(v, _ int) int { return v * 2 }).
			Map(func(v, _ int) int { return v + 1 })

		v, err := s.Get(3)
		require.NoError(t, err)
		assert.Equal(t, 9, v)

		seqtest.AssertMinimalReads(t, m, 1)
		assert.True(t, m.WasRead(3))
	})

	t.Run("function receives index", func(t *testing.T) {
		s := seq.FromSlice([]int{10, 20, 30}).Map(func(_, i int) int { return i })
		assert.Equal(t, []int{0, 1, 2}, s.ToSlice())
	})
}

func TestMapTo_ChangesElementType(t *testing.T) {
	s := seq.MapTo(seq.FromSlice([]int{1, 2, 3}), func(v, _ int) string {
		return string(rune('a' + v - 1))
	})

	seqtest.AssertCapability(t, s, seq.Indexable)
	assert.Equal(t, []string{"a", "b", "c"}, s.ToSlice())

	v, err := s.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "c", v)
}

func TestFilter(t *testing.T) {
	t.Run("downgrades to iterable-only", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2, 3, 4}).Filter(isEven)

		seqtest.AssertCapability(t, s, seq.IterableOnly)
		assert.Equal(t, []int{2, 4}, s.ToSlice())
	})

	t.Run("re-bases downstream indexes", func(t *testing.T) {
		s := seq.FromSlice([]int{10, 20, 30}).Filter(func(v, _ int) bool { return v > 10 })

		r := seqtest.NewIndexRecorder[int]()
		completed := s.Each(r.Consumer())

		assert.True(t, completed)
		assert.Equal(t, []int{20, 30}, r.Values())
		seqtest.AssertIndexes(t, r, []int{0, 1})
	})

	t.Run("predicate receives upstream index", func(t *testing.T) {
		var preds []int
		seq.FromSlice([]int{5, 6, 7}).Filter(func(_, i int) bool {
			preds = append(preds, i)
			return true
		}).ToSlice()

		assert.Equal(t, []int{0, 1, 2}, preds)
	})

	t.Run("filter then map yields re-based indexes", func(t *testing.T) {
		s := seq.FromSlice([]int{10, 20, 30}).
			Filter(func(v, _ int) bool { return v > 10 }).
			Map(func(_, i int) int { return i })

		assert.Equal(t, []int{0, 1}, s.ToSlice())
	})
}

func TestTake(t *testing.T) {
	t.Run("indexable length is clamped", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2, 3, 4, 5}).Take(3)

		seqtest.AssertCapability(t, s, seq.Indexable)
		n, ok := s.Len()
		require.True(t, ok)
		assert.Equal(t, 3, n)

		_, err := s.Get(3)
		assert.True(t, seq.IsOutOfRange(err))
	})

	t.Run("take larger than sequence", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2}).Take(10)
		n, _ := s.Len()
		assert.Equal(t, 2, n)
		assert.Equal(t, []int{1, 2}, s.ToSlice())
	})

	t.Run("take zero reads nothing", func(t *testing.T) {
		m := seqtest.Monitor([]int{1, 2, 3})

		completed := seq.Wrap[int](m).Take(0).Each(func(int, int) bool { return true })

		assert.True(t, completed)
		assert.Zero(t, m.DistinctReads())
	})

	t.Run("minimal reads", func(t *testing.T) {
		m := seqtest.Monitor([]int{1, 2, 3, 4, 5})

		seq.Wrap[int](m).Take(2).Each(func(int, int) bool { return true })

		seqtest.AssertMinimalReads(t, m, 2)
	})

	t.Run("minimal reads through a filter", func(t *testing.T) {
		items := []int{1, 2, 3, 4, 5}
		m := seqtest.Monitor(items)

		completed := seq.Wrap[int](m).Filter(isEven).Take(2).Each(func(int, int) bool { return true })

		require.True(t, completed)
		// The minimum is chain-specific: finding 2 even elements in
		// [1 2 3 4 5] costs reading up to and including position 3.
		want := seqtest.MinimalReadsForTake(items, isEven, 2)
		assert.Equal(t, 4, want)
		seqtest.AssertMinimalReads(t, m, want)
		assert.False(t, m.WasRead(4), "last element must never be read")
	})
}

func TestSkip(t *testing.T) {
	t.Run("preserves indexability with shifted access", func(t *testing.T) {
		m := seqtest.Monitor([]int{1, 2, 3, 4, 5})
		s := seq.Wrap[int](m).Skip(2)

		seqtest.AssertCapability(t, s, seq.Indexable)
		n, ok := s.Len()
		require.True(t, ok)
		assert.Equal(t, 3, n)

		v, err := s.Get(0)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
		seqtest.AssertMinimalReads(t, m, 1)
		assert.True(t, m.WasRead(2))
	})

	t.Run("re-bases indexes on traversal", func(t *testing.T) {
		r := seqtest.NewIndexRecorder[int]()
		seq.FromSlice([]int{1, 2, 3, 4}).Skip(2).Each(r.Consumer())

		assert.Equal(t, []int{3, 4}, r.Values())
		seqtest.AssertIndexes(t, r, []int{0, 1})
	})

	t.Run("skip past the end", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2}).Skip(5)
		n, _ := s.Len()
		assert.Zero(t, n)
		assert.Empty(t, s.ToSlice())
	})
}

func TestTakeWhile(t *testing.T) {
	m := seqtest.Monitor([]int{1, 2, 3, 10, 4})
	s := seq.Wrap[int](m).TakeWhile(func(v, _ int) bool { return v < 5 })

	seqtest.AssertCapability(t, s, seq.IterableOnly)
	assert.Equal(t, []int{1, 2, 3}, s.ToSlice())

	// The failing element had to be read; nothing after it was.
	seqtest.AssertMinimalReads(t, m, 4)
	assert.False(t, m.WasRead(4))
}

func TestIdentity(t *testing.T) {
	t.Run("preserves everything", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2, 3}).Identity()

		seqtest.AssertCapability(t, s, seq.Indexable)
		n, ok := s.Len()
		require.True(t, ok)
		assert.Equal(t, 3, n)

		v, err := s.Get(2)
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("is lazy", func(t *testing.T) {
		m := seqtest.Monitor([]int{1, 2, 3})
		seq.Wrap[int](m).Identity()
		assert.Zero(t, m.DistinctReads())
	})

	t.Run("iterable upstream stays iterable", func(t *testing.T) {
		s := seq.FromSlice([]int{1, 2, 3}).Filter(isEven).Identity()
		seqtest.AssertCapability(t, s, seq.IterableOnly)
	})
}

func TestOperatorConstructionIsLazy(t *testing.T) {
	calls := 0
	s := seq.FromSlice([]int{1, 2, 3}).
		Map(func(v, _ int) int { calls++; return v }).
		Filter(func(_, _ int) bool { calls++; return true }).
		Take(2)

	assert.Zero(t, calls, "construction must not evaluate operator functions")

	s.ToSlice()
	assert.NotZero(t, calls)
}
