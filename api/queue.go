// Package api
package api

// LaneQueue is the bounded FIFO contract carrying Thunks from any number
// of producers to exactly one consumer: a lane's worker. Per-producer
// enqueue order is preserved on dequeue; a successful write is never lost.
//
// Two independent backends satisfy this contract (see package queue): a
// lock-free bounded ring and a mutex-guarded ring. Either is correct; the
// lock-free variant is preferred for latency under contention.
type LaneQueue[T any] interface {
	// BlockingWrite suspends the caller until space is available, then enqueues.
	BlockingWrite(item T)
	// TryWrite enqueues item and returns true, or returns false immediately if full.
	// item is never lost: on false, the caller still holds it.
	TryWrite(item T) bool
	// TryRead dequeues the oldest item, or returns false immediately if empty.
	TryRead() (item T, ok bool)
	// Cap returns the fixed queue capacity.
	Cap() int
	// Len returns the approximate number of items currently queued.
	Len() int
}
