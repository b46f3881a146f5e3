// Package backoff implements the lane worker's idle-backoff policy.
//
// A Lane's worker spends most of its idle iterations waiting on the next
// burst of work; the first iterations should cost almost nothing so the
// next enqueue is observed quickly, while prolonged idleness should fall
// back to a longer sleep so an idle lane does not spin a full core.
// AdaptiveSleeper is the tiered state machine implementing that tradeoff,
// grounded on the escalating-backoff loop used by the teacher's batched
// event poller, replaced here with the fixed tier table the runtime
// requires instead of that poller's doubling schedule.
package backoff

import (
	"runtime"
	"time"
)

// AdaptiveSleeper tracks consecutive idle iterations and escalates the
// sleep duration accordingly. It is worker-local: never share one
// instance across lanes or goroutines.
type AdaptiveSleeper struct {
	n uint64
}

// New returns a sleeper starting at iteration zero.
func New() *AdaptiveSleeper {
	return &AdaptiveSleeper{}
}

// Sleep performs the action for the current iteration count, then
// advances the count. Durations are lower bounds; the OS scheduler may
// sleep longer. Never panics.
func (s *AdaptiveSleeper) Sleep() {
	switch {
	case s.n == 0:
		runtime.Gosched()
	case s.n <= 10:
		time.Sleep(time.Microsecond)
	case s.n <= 20:
		time.Sleep(10 * time.Microsecond)
	case s.n <= 30:
		time.Sleep(100 * time.Microsecond)
	default:
		time.Sleep(time.Millisecond)
	}
	s.n++
}

// Reset zeroes the idle counter. Call after any successfully executed task.
func (s *AdaptiveSleeper) Reset() {
	s.n = 0
}

// Iterations returns the current consecutive-idle count, mainly for tests.
func (s *AdaptiveSleeper) Iterations() uint64 {
	return s.n
}
