package queue

import (
	"sync"

	eapache "github.com/eapache/queue"

	"github.com/corewire/lanedispatch/api"
	"github.com/corewire/lanedispatch/backoff"
)

// Locking is a mutex-guarded bounded ring backed by eapache/queue's
// growable ring buffer, offered as the alternate LaneQueue substrate the
// runtime's design notes describe alongside the lock-free default. Pick
// it with lane.WithLockingQueue when a simpler, mutex-based queue is
// preferable to lock-free cell juggling (e.g. while debugging a suspected
// queue-layer issue).
type Locking[T any] struct {
	mu  sync.Mutex
	cap int
	ring *eapache.Queue
}

// NewLocking creates a Locking queue with the given fixed capacity.
func NewLocking[T any](capacity int) *Locking[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Locking[T]{cap: capacity, ring: eapache.New()}
}

// TryWrite enqueues item, returning false immediately if at capacity.
func (q *Locking[T]) TryWrite(item T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.Length() >= q.cap {
		return false
	}
	q.ring.Add(item)
	return true
}

// BlockingWrite spins with an escalating backoff until TryWrite succeeds.
func (q *Locking[T]) BlockingWrite(item T) {
	sl := backoff.New()
	for !q.TryWrite(item) {
		sl.Sleep()
	}
}

// TryRead dequeues the oldest item, returning false immediately if empty.
func (q *Locking[T]) TryRead() (item T, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.ring.Length() == 0 {
		var zero T
		return zero, false
	}
	v := q.ring.Peek()
	q.ring.Remove()
	return v.(T), true
}

// Cap returns the queue's fixed capacity.
func (q *Locking[T]) Cap() int { return q.cap }

// Len returns the number of items currently queued.
func (q *Locking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.ring.Length()
}

var _ api.LaneQueue[int] = (*Locking[int])(nil)
