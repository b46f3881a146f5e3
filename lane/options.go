package lane

import (
	"github.com/corewire/lanedispatch/affinity"
	"github.com/corewire/lanedispatch/api"
	"github.com/corewire/lanedispatch/queue"
)

// PanicPolicy selects what a Lane's worker does when a thunk panics. The
// runtime's design notes leave this an implementation choice; lanedispatch
// defaults to catch-log-continue and offers fail-stop for callers that
// would rather crash loudly than risk a corrupted state object.
type PanicPolicy int

const (
	// PanicLogAndContinue recovers a panicking thunk, logs it via diag.Logger,
	// and keeps the lane running. This is the default.
	PanicLogAndContinue PanicPolicy = iota
	// PanicFailStop lets a panicking thunk crash the worker goroutine (and,
	// absent a recover higher up the call stack, the process).
	PanicFailStop
)

// Option configures a Lane at construction time.
type Option[S any] func(*config[S])

type config[S any] struct {
	queueFactory func(capacity int) api.LaneQueue[api.Thunk[S]]
	panicPolicy  PanicPolicy
	bindEnabled  bool
	binder       api.Binder
}

func defaultConfig[S any]() config[S] {
	return config[S]{
		queueFactory: func(capacity int) api.LaneQueue[api.Thunk[S]] {
			return queue.NewLockFree[api.Thunk[S]](capacity)
		},
		panicPolicy: PanicLogAndContinue,
		bindEnabled: true,
		binder:      affinity.Default{},
	}
}

// WithLockingQueue selects the mutex-guarded eapache/queue-backed LaneQueue
// instead of the lock-free default.
func WithLockingQueue[S any]() Option[S] {
	return func(c *config[S]) {
		c.queueFactory = func(capacity int) api.LaneQueue[api.Thunk[S]] {
			return queue.NewLocking[api.Thunk[S]](capacity)
		}
	}
}

// WithPanicPolicy overrides the default catch-log-continue panic policy.
func WithPanicPolicy[S any](p PanicPolicy) Option[S] {
	return func(c *config[S]) { c.panicPolicy = p }
}

// WithAffinityBinding toggles whether the lane attempts to pin its worker
// to a logical core. Tests and sandboxed environments often want this off.
func WithAffinityBinding[S any](enabled bool) Option[S] {
	return func(c *config[S]) { c.bindEnabled = enabled }
}

// WithBinder overrides the api.Binder used to pin the worker, mainly
// for tests that want to assert binding was attempted with a fake.
func WithBinder[S any](b api.Binder) Option[S] {
	return func(c *config[S]) { c.binder = b }
}
