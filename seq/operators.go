package seq

// Operator nodes. Each constructor builds a new node from its
// upstream plus parameters without evaluating anything: user
// functions run only during a drain, and any panic they raise
// surfaces to the caller of that drain.

// Map transforms each element with f(element, index). The upstream
// capability and length are preserved: mapping an Indexable node
// keeps positional access, and Get through the result reads exactly
// the source positions the upstream Get would.
//
// f must be pure with respect to the sequence: it may be called once
// per drained element per drain, in upstream order on the Each path
// and per requested position on the Get path.
func (s *Sequence[T]) Map(f func(v T, i int) T) *Sequence[T] {
	return mapNode(s, f)
}

// MapTo is Map for transforms that change the element type. Go
// methods cannot introduce type parameters, so the type-changing
// variant lives at package level; the algebra is identical.
func MapTo[T, R any](s *Sequence[T], f func(v T, i int) R) *Sequence[R] {
	return mapNode(s, f)
}

func mapNode[T, R any](s *Sequence[T], f func(v T, i int) R) *Sequence[R] {
	out := &Sequence[R]{capability: s.capability}
	if s.capability == Indexable {
		up := s.at
		out.length = s.length
		out.at = func(i int) R {
			return f(up(i), i)
		}
	}
	upEach := s.forEach
	out.forEach = func(yield func(int, R) bool) {
		upEach(func(i int, v T) bool {
			return yield(i, f(v, i))
		})
	}
	return out
}

// Filter keeps the elements for which pred(element, index) is true.
// The index passed to pred is the upstream's index; surviving
// elements are re-indexed from 0 for downstream consumers.
//
// The result is always IterableOnly, even over an Indexable upstream:
// the surviving length is unknown without a full scan.
func (s *Sequence[T]) Filter(pred func(v T, i int) bool) *Sequence[T] {
	upEach := s.forEach
	return &Sequence[T]{
		capability: IterableOnly,
		forEach: func(yield func(int, T) bool) {
			kept := 0
			upEach(func(i int, v T) bool {
				if !pred(v, i) {
					return true
				}
				ok := yield(kept, v)
				kept++
				return ok
			})
		},
	}
}

// Take limits the sequence to its first n elements. The upstream
// capability is preserved; on the Indexable path the length becomes
// min(n, upstream length).
//
// On the iterable path the upstream pull stops as soon as n elements
// have been yielded downstream: the upstream is never asked for more
// than the elements needed to produce n outputs (plus whatever
// earlier filters had to read and discard to find them).
func (s *Sequence[T]) Take(n int) *Sequence[T] {
	if n < 0 {
		n = 0
	}
	out := &Sequence[T]{capability: s.capability}
	if s.capability == Indexable {
		out.length = min(n, s.length)
		out.at = s.at
	}
	upEach := s.forEach
	out.forEach = func(yield func(int, T) bool) {
		if n == 0 {
			return
		}
		taken := 0
		upEach(func(i int, v T) bool {
			if !yield(i, v) {
				return false
			}
			taken++
			return taken < n
		})
	}
	return out
}

// Skip drops the first n elements. The upstream capability is
// preserved: on the Indexable path position i resolves to upstream
// position i+n, still touching exactly one source position. Indexes
// are re-based so the first surviving element is index 0.
func (s *Sequence[T]) Skip(n int) *Sequence[T] {
	if n < 0 {
		n = 0
	}
	out := &Sequence[T]{capability: s.capability}
	if s.capability == Indexable {
		out.length = max(0, s.length-n)
		up := s.at
		out.at = func(i int) T {
			return up(i + n)
		}
	}
	upEach := s.forEach
	out.forEach = func(yield func(int, T) bool) {
		skipped := 0
		upEach(func(_ int, v T) bool {
			if skipped < n {
				skipped++
				return true
			}
			ok := yield(skipped-n, v)
			skipped++
			return ok
		})
	}
	return out
}

// TakeWhile yields elements while pred(element, index) holds, then
// stops the upstream pull at the first failing element. The surviving
// length is unknown up front, so the result is IterableOnly.
func (s *Sequence[T]) TakeWhile(pred func(v T, i int) bool) *Sequence[T] {
	upEach := s.forEach
	return &Sequence[T]{
		capability: IterableOnly,
		forEach: func(yield func(int, T) bool) {
			upEach(func(i int, v T) bool {
				if !pred(v, i) {
					return false
				}
				return yield(i, v)
			})
		},
	}
}

// Identity returns a pass-through node preserving the upstream's
// capability, length and indexes. Useful to force a value into a
// fresh node without changing semantics; the layer is itself lazy.
func (s *Sequence[T]) Identity() *Sequence[T] {
	return &Sequence[T]{
		capability: s.capability,
		length:     s.length,
		at:         s.at,
		forEach:    s.forEach,
	}
}
