package seqtest

// IndexRecorder captures what a drain delivered to its consumer: the
// elements and the node-local indexes, in order. It backs the
// "consumer received expected index sequence" assertions.
type IndexRecorder[T any] struct {
	values  []T
	indexes []int
}

// NewIndexRecorder creates an empty recorder.
func NewIndexRecorder[T any]() *IndexRecorder[T] {
	return &IndexRecorder[T]{}
}

// Consumer returns an Each consumer that records every element and
// never stops early.
func (r *IndexRecorder[T]) Consumer() func(v T, i int) bool {
	return func(v T, i int) bool {
		r.record(v, i)
		return true
	}
}

// StopAfter returns an Each consumer that records elements and
// requests an early stop once n have been seen. The n-th element is
// still recorded; the stop takes effect at its pull boundary.
func (r *IndexRecorder[T]) StopAfter(n int) func(v T, i int) bool {
	return func(v T, i int) bool {
		r.record(v, i)
		return len(r.values) < n
	}
}

func (r *IndexRecorder[T]) record(v T, i int) {
	r.values = append(r.values, v)
	r.indexes = append(r.indexes, i)
}

// Values returns the recorded elements in delivery order.
func (r *IndexRecorder[T]) Values() []T {
	return r.values
}

// Indexes returns the recorded indexes in delivery order.
func (r *IndexRecorder[T]) Indexes() []int {
	return r.indexes
}
