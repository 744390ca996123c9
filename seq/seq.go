package seq

import "iter"

// Indexed is a fixed-length random-access collection, the source
// contract for Wrap. Reading one position must not force reads at any
// other position.
//
// Implemented by the slice adapter returned from FromSlice and by
// seqtest.MonitoredSlice for access-tracking tests.
type Indexed[T any] interface {
	// Len returns the number of elements. Fixed at construction.
	Len() int

	// At returns the element at position i, 0 <= i < Len().
	At(i int) T
}

// Sequence is an immutable node in a chain of deferred computations.
//
// A node holds its evaluation strategy as closures over its upstream:
// at resolves one position (Indexable nodes only) and forEach drives
// a forward traversal with node-local 0-based indexes. Constructing a
// node never reads elements and never calls operator functions.
type Sequence[T any] struct {
	capability Capability

	// length is meaningful only when capability == Indexable.
	length int

	// at resolves position i without touching other positions.
	// Nil when capability == IterableOnly.
	at func(i int) T

	// forEach traverses in upstream order, yielding (index, element)
	// with this node's own re-based index. Returning false from yield
	// halts the traversal and guarantees no further source reads.
	forEach func(yield func(int, T) bool)
}

// Wrap adapts a fixed-length indexable collection as the root of a
// sequence chain. The collection's length is captured once; no
// elements are read until a drain runs.
func Wrap[T any](col Indexed[T]) *Sequence[T] {
	n := col.Len()
	return &Sequence[T]{
		capability: Indexable,
		length:     n,
		at:         col.At,
		forEach: func(yield func(int, T) bool) {
			for i := 0; i < n; i++ {
				if !yield(i, col.At(i)) {
					return
				}
			}
		},
	}
}

// sliceIndexed adapts a slice to the Indexed contract.
type sliceIndexed[T any] struct {
	items []T
}

func (s sliceIndexed[T]) Len() int   { return len(s.items) }
func (s sliceIndexed[T]) At(i int) T { return s.items[i] }

// FromSlice wraps a slice as an Indexable sequence. The slice is not
// copied; callers must not mutate it while drains are in flight.
func FromSlice[T any](items []T) *Sequence[T] {
	return Wrap[T](sliceIndexed[T]{items: items})
}

// FromSeq adapts a push iterator as an IterableOnly root. The
// iterator is not consumed until a drain runs, and early stop from a
// drain propagates into it through the yield return value.
func FromSeq[T any](src iter.Seq[T]) *Sequence[T] {
	return &Sequence[T]{
		capability: IterableOnly,
		forEach: func(yield func(int, T) bool) {
			i := 0
			for v := range src {
				if !yield(i, v) {
					return
				}
				i++
			}
		},
	}
}

// Capability returns the node's structural capability tag.
func (s *Sequence[T]) Capability() Capability {
	return s.capability
}

// Len returns the sequence length and true when the node is
// Indexable. IterableOnly nodes report (0, false): their length is
// unknown without a full scan.
func (s *Sequence[T]) Len() (int, bool) {
	if s.capability != Indexable {
		return 0, false
	}
	return s.length, true
}

// Each drains the sequence synchronously, invoking consumer with each
// element and its node-local 0-based index in upstream order.
//
// A false return from consumer halts the drain at that element - no
// further source positions are read - and Each returns false. Each
// returns true iff every element was observed.
func (s *Sequence[T]) Each(consumer func(v T, i int) bool) bool {
	completed := true
	s.forEach(func(i int, v T) bool {
		if !consumer(v, i) {
			completed = false
			return false
		}
		return true
	})
	return completed
}

// TryEach is Each for consumers that can fail. The first error aborts
// the drain and is returned unchanged; the engine never retries and
// never reads past the failing element. The bool result mirrors Each
// and is false on early stop or error.
func (s *Sequence[T]) TryEach(consumer func(v T, i int) (bool, error)) (bool, error) {
	var drainErr error
	completed := true
	s.forEach(func(i int, v T) bool {
		keep, err := consumer(v, i)
		if err != nil {
			drainErr = err
			completed = false
			return false
		}
		if !keep {
			completed = false
			return false
		}
		return true
	})
	return completed, drainErr
}

// Get resolves position i by composing each node's positional
// accessor. No intermediate collection is materialized and no
// earlier positions are read: through a pure Map chain exactly one
// source position is touched.
//
// Returns NotIndexableError on IterableOnly nodes and OutOfRangeError
// outside [0, length).
func (s *Sequence[T]) Get(i int) (T, error) {
	var zero T
	if s.capability != Indexable {
		return zero, &NotIndexableError{Capability: s.capability}
	}
	if i < 0 || i >= s.length {
		return zero, &OutOfRangeError{Index: i, Length: s.length}
	}
	return s.at(i), nil
}

// Values returns the sequence as a push iterator, for range-over-func
// consumption. Breaking out of the range loop is an early stop with
// the same no-further-reads guarantee as Each.
func (s *Sequence[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.forEach(func(_ int, v T) bool {
			return yield(v)
		})
	}
}

// Indexed returns the sequence as a (index, element) push iterator
// with node-local indexes.
func (s *Sequence[T]) Indexed() iter.Seq2[int, T] {
	return iter.Seq2[int, T](s.forEach)
}

// ToSlice drains the sequence into a fresh slice.
func (s *Sequence[T]) ToSlice() []T {
	var out []T
	if s.capability == Indexable {
		out = make([]T, 0, s.length)
	}
	s.forEach(func(_ int, v T) bool {
		out = append(out, v)
		return true
	})
	return out
}

// Equal reports whether two sequences yield the same elements in the
// same order. Both sequences are drained up to the first difference.
func Equal[T comparable](a, b *Sequence[T]) bool {
	next, stop := iter.Pull(b.Values())
	defer stop()

	same := true
	a.forEach(func(_ int, av T) bool {
		bv, ok := next()
		if !ok || av != bv {
			same = false
			return false
		}
		return true
	})
	if !same {
		return false
	}
	_, extra := next()
	return !extra
}
