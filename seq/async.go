package seq

import (
	"context"
	"iter"
	"sync"

	"github.com/google/uuid"
)

// HandleState describes where an asynchronous drain is in its
// lifecycle. A handle settles exactly once and is never reused.
type HandleState int

const (
	// StatePending means the drain is queued or in flight; results
	// accumulate monotonically while here.
	StatePending HandleState = iota + 1

	// StateComplete means every element was yielded.
	StateComplete

	// StateCancelled means the drain stopped early - Cancel was
	// called or a consumer returned false. No source positions were
	// read past the cancellation boundary.
	StateCancelled
)

// String returns the state name for logs and assertion messages.
func (s HandleState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateComplete:
		return "complete"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

type asyncConfig struct {
	scheduler *Scheduler
	batchSize int
	limit     int
}

// AsyncOption configures an asynchronous drain.
type AsyncOption func(*asyncConfig)

// WithScheduler runs the drain on a specific scheduler instead of the
// package default. Handles sharing a scheduler interleave on its
// single goroutine.
func WithScheduler(s *Scheduler) AsyncOption {
	return func(c *asyncConfig) {
		c.scheduler = s
	}
}

// WithBatchSize sets how many elements are pulled per scheduler step
// before control yields back. Default is 1.
func WithBatchSize(n int) AsyncOption {
	return func(c *asyncConfig) {
		if n < 1 {
			n = 1
		}
		c.batchSize = n
	}
}

// WithLimit caps the drain at n elements, equivalent to composing
// Take(n) in front of the drain: the handle completes after exactly
// n elements with no further source pulls.
func WithLimit(n int) AsyncOption {
	return func(c *asyncConfig) {
		c.limit = n
	}
}

// Handle is an in-flight or settled asynchronous drain.
//
// All mutation happens on the scheduler goroutine; accessors are safe
// from any goroutine.
type Handle[T any] struct {
	id uuid.UUID

	mu      sync.Mutex
	state   HandleState
	results []T
	cancel  bool

	consumer func(v T, i int) bool
	done     chan struct{}
}

// Async starts an asynchronous drain of the sequence and returns its
// handle immediately. Elements are pulled in batches on the
// scheduler's goroutine, accumulating on the handle; Done fires
// exactly once, after the last element, when the drain settles.
func (s *Sequence[T]) Async(opts ...AsyncOption) *Handle[T] {
	return s.asyncDrain(nil, opts)
}

// AsyncEach is Async with a streaming consumer. The consumer runs on
// the scheduler goroutine with the same (element, index) contract as
// Each; returning false cancels the drain at that element.
func (s *Sequence[T]) AsyncEach(consumer func(v T, i int) bool, opts ...AsyncOption) *Handle[T] {
	return s.asyncDrain(consumer, opts)
}

func (s *Sequence[T]) asyncDrain(consumer func(v T, i int) bool, opts []AsyncOption) *Handle[T] {
	cfg := asyncConfig{batchSize: 1}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.scheduler == nil {
		cfg.scheduler = DefaultScheduler()
	}

	src := s
	if cfg.limit > 0 {
		src = src.Take(cfg.limit)
	}

	h := &Handle[T]{
		id:       uuid.New(),
		state:    StatePending,
		consumer: consumer,
		done:     make(chan struct{}),
	}
	h.start(src, cfg)
	return h
}

func (h *Handle[T]) start(src *Sequence[T], cfg asyncConfig) {
	var (
		next func() (int, T, bool)
		stop func()
	)

	// One pull coroutine per handle, created lazily on the scheduler
	// goroutine so next/stop are never called concurrently.
	var step func()
	step = func() {
		if next == nil {
			next, stop = iter.Pull2(src.Indexed())
		}
		if h.cancelRequested() {
			stop()
			h.settle(StateCancelled)
			return
		}
		for range cfg.batchSize {
			i, v, ok := next()
			if !ok {
				h.settle(StateComplete)
				return
			}
			consumer := h.append(v)
			if consumer != nil && !consumer(v, i) {
				stop()
				h.settle(StateCancelled)
				return
			}
		}
		if !cfg.scheduler.enqueue(step) {
			// Scheduler closed under us; the handle stays pending.
			stop()
		}
	}

	if !cfg.scheduler.enqueue(step) {
		// Closed scheduler: nothing will ever run this drain. Settle
		// as cancelled rather than leaving Done hanging forever.
		h.settle(StateCancelled)
	}
}

// cancelRequested reports whether Cancel was called. Checked at each
// pull boundary only - cancellation is cooperative.
func (h *Handle[T]) cancelRequested() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cancel
}

// append records a yielded element and returns the consumer, if any,
// under the same lock acquisition.
func (h *Handle[T]) append(v T) func(T, int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.results = append(h.results, v)
	return h.consumer
}

func (h *Handle[T]) settle(state HandleState) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StatePending {
		return
	}
	h.state = state
	close(h.done)
}

// ID returns the handle's unique identifier.
func (h *Handle[T]) ID() uuid.UUID {
	return h.id
}

// State returns the handle's current lifecycle state.
func (h *Handle[T]) State() HandleState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Results returns a snapshot of the accumulated elements. While the
// handle is pending the snapshot grows monotonically; once settled it
// is the final result.
func (h *Handle[T]) Results() []T {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]T, len(h.results))
	copy(out, h.results)
	return out
}

// Done returns a channel closed exactly once, when the drain settles
// (complete or cancelled). It never fires before the final element
// has been recorded.
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Cancel requests a cooperative stop. It takes effect at the next
// pull boundary, after which no further source positions are read.
// Returns AlreadySettledError when the handle has already settled.
func (h *Handle[T]) Cancel() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StatePending {
		return &AlreadySettledError{State: h.state}
	}
	h.cancel = true
	return nil
}

// Collect waits for the drain to settle and returns the accumulated
// elements - the toArray terminal. On context cancellation it returns
// the snapshot so far along with ctx.Err().
func (h *Handle[T]) Collect(ctx context.Context) ([]T, error) {
	select {
	case <-h.done:
		return h.Results(), nil
	case <-ctx.Done():
		return h.Results(), ctx.Err()
	}
}
