package queue

import (
	"sync/atomic"

	"github.com/corewire/lanedispatch/api"
	"github.com/corewire/lanedispatch/backoff"
)

const cacheLinePad = 64

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// LockFree is a bounded MPMC ring buffer using the Dmitry Vyukov cell
// sequence-number pattern: each cell advertises which producer/consumer
// generation currently owns it, so enqueue and dequeue never block each
// other beyond a short CAS retry loop. head and tail are padded to
// separate cache lines since they are written by disjoint sets of
// goroutines (many producers touch tail, the one consumer touches head).
type LockFree[T any] struct {
	head uint64
	_    [cacheLinePad]byte
	tail uint64
	_    [cacheLinePad]byte
	mask uint64
	cells []cell[T]
}

// NewLockFree creates a queue with capacity rounded up to the next power of two.
func NewLockFree[T any](capacity int) *LockFree[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}
	q := &LockFree[T]{
		mask:  uint64(size - 1),
		cells: make([]cell[T], size),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// TryWrite enqueues item, returning false immediately if the ring is full.
func (q *LockFree[T]) TryWrite(item T) bool {
	for {
		tail := atomic.LoadUint64(&q.tail)
		idx := tail & q.mask
		c := &q.cells[idx]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(tail)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				c.data = item
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false // full
		default:
			// tail advanced under us; retry with the new value
		}
	}
}

// BlockingWrite spins with an escalating backoff until TryWrite succeeds.
// It uses its own AdaptiveSleeper, distinct from any consumer-side
// sleeper, since producer idleness and consumer idleness are unrelated.
func (q *LockFree[T]) BlockingWrite(item T) {
	sl := backoff.New()
	for !q.TryWrite(item) {
		sl.Sleep()
	}
}

// TryRead dequeues the oldest item, returning false immediately if empty.
func (q *LockFree[T]) TryRead() (item T, ok bool) {
	for {
		head := atomic.LoadUint64(&q.head)
		idx := head & q.mask
		c := &q.cells[idx]
		seq := c.sequence.Load()
		dif := int64(seq) - int64(head+1)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
				item = c.data
				var zero T
				c.data = zero
				c.sequence.Store(head + q.mask + 1)
				return item, true
			}
		case dif < 0:
			var zero T
			return zero, false // empty
		default:
			// head advanced under us; retry
		}
	}
}

// Cap returns the ring's fixed capacity.
func (q *LockFree[T]) Cap() int { return len(q.cells) }

// Len returns the approximate number of items currently queued. The value
// may be stale by the time the caller observes it under concurrent access.
func (q *LockFree[T]) Len() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)
	if tail < head {
		return 0
	}
	return int(tail - head)
}

var _ api.LaneQueue[int] = (*LockFree[int])(nil)
