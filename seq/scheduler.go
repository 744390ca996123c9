package seq

import (
	"context"
	"sync"
)

// stepQueue is a thread-safe FIFO of pending drain steps.
//
// The queue is unbounded so that any number of in-flight handles can
// requeue their next step without blocking the scheduler loop.
//
// Thread-safety is provided for external enqueuing (Async may be
// called from any goroutine) while the Scheduler's Run loop dequeues.
//
// A buffered signal channel (size 1) coalesces availability
// notifications and lets the Run loop wait without spinning.
type stepQueue struct {
	mu     sync.Mutex
	steps  []func()
	closed bool
	signal chan struct{}
}

func newStepQueue() *stepQueue {
	return &stepQueue{
		steps:  make([]func(), 0, 16),
		signal: make(chan struct{}, 1),
	}
}

// enqueue adds a step to the back of the queue.
// Returns false if the queue is closed.
func (q *stepQueue) enqueue(step func()) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.steps = append(q.steps, step)

	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// tryDequeue pops the front step without blocking. A closed queue
// yields nothing: steps still queued at close time are discarded.
func (q *stepQueue) tryDequeue() (func(), bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed || len(q.steps) == 0 {
		return nil, false
	}
	step := q.steps[0]
	q.steps = q.steps[1:]
	return step, true
}

// close marks the queue closed and closes the signal channel so every
// waiter (present and future) wakes immediately. Idempotent.
func (q *stepQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}

func (q *stepQueue) isClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}

// wait returns a channel that fires when a step may be available or
// the queue has been closed.
func (q *stepQueue) wait() <-chan struct{} {
	return q.signal
}

// Scheduler drives asynchronous drains cooperatively on a single
// goroutine. Each queued step pulls one batch from its sequence,
// hands the elements to its handle, then requeues itself, so control
// yields back between batches and concurrent handles interleave in
// FIFO order.
//
// All pulls happen on the Run goroutine - a Sequence is never touched
// from more than one goroutine at a time.
type Scheduler struct {
	queue *stepQueue
	clock *Clock
}

// NewScheduler creates a scheduler. Run must be called (typically on
// its own goroutine) before queued drains make progress.
func NewScheduler() *Scheduler {
	return &Scheduler{
		queue: newStepQueue(),
		clock: NewClock(),
	}
}

// Run processes steps until ctx is cancelled or the scheduler is
// closed. Must be called from exactly one goroutine.
func (s *Scheduler) Run(ctx context.Context) error {
	for {
		step, ok := s.queue.tryDequeue()
		if ok {
			s.clock.Next()
			step()
			continue
		}

		select {
		case <-ctx.Done():
			s.queue.close()
			return ctx.Err()

		case <-s.queue.wait():
			// Woken by an enqueue or by close. The signal channel is
			// closed on Close, so this fires immediately from then on.
			if s.queue.isClosed() {
				return nil
			}
		}
	}
}

// Close shuts the scheduler down. Steps already queued are discarded
// once Run observes the close; pending handles stop making progress
// and stay unsettled.
func (s *Scheduler) Close() {
	s.queue.close()
}

// Steps returns how many steps the scheduler has executed. Intended
// for observability and tests.
func (s *Scheduler) Steps() int64 {
	return s.clock.Current()
}

func (s *Scheduler) enqueue(step func()) bool {
	return s.queue.enqueue(step)
}

var (
	defaultSchedulerOnce sync.Once
	defaultScheduler     *Scheduler
)

// DefaultScheduler returns the shared package scheduler, starting its
// Run loop on first use. Async uses it unless WithScheduler overrides.
func DefaultScheduler() *Scheduler {
	defaultSchedulerOnce.Do(func() {
		defaultScheduler = NewScheduler()
		go func() {
			_ = defaultScheduler.Run(context.Background())
		}()
	})
	return defaultScheduler
}
