// Package queue implements the two LaneQueue backends a Lane may use to
// carry Thunks from its producers to its single worker:
//
//   - LockFree: a bounded Vyukov-style MPMC ring using per-cell sequence
//     numbers, adapted from the teacher library's lock-free task queue.
//   - Locking: a mutex-guarded ring backed by github.com/eapache/queue,
//     the alternative substrate the runtime's design notes call out
//     explicitly ("a known source variant used a mutex-guarded ring").
//
// Both satisfy api.LaneQueue[T]; either is correct, the lock-free variant
// is preferred for latency under contention.
package queue
