// Package lane implements the single-worker execution unit the
// dispatcher shards work across: one goroutine locked to one OS thread,
// one owned state object, one bounded queue, one idle-backoff sleeper.
//
// Grounded on the teacher library's Executor/worker pair (a pool of
// goroutines each pumping a lock-free local queue), narrowed from "a pool
// of N interchangeable workers sharing one state" down to "exactly one
// worker permanently owning exactly one state object" — the shape the
// runtime's per-key serialization depends on.
package lane

import (
	"runtime"
	"sync/atomic"

	"github.com/corewire/lanedispatch/api"
	"github.com/corewire/lanedispatch/backoff"
	"github.com/corewire/lanedispatch/diag"
	"github.com/corewire/lanedispatch/lanestats"
)

// Lane owns one state object of type S and executes Thunks against it
// one at a time, in FIFO order, on a single worker goroutine. state is
// never exposed through a shared reference: only the worker touches it.
type Lane[S any] struct {
	index       int
	state       S
	q           api.LaneQueue[api.Thunk[S]]
	lifecycle   atomic.Int32
	sleeper     *backoff.AdaptiveSleeper
	doneCh      chan struct{}
	panicPolicy PanicPolicy
	executed    atomic.Uint64
	panicked    atomic.Uint64
}

// New constructs a Lane with the given queue capacity and lane index,
// builds its state via newState, starts the worker, and attempts to bind
// the worker to logical core index before returning. If newState fails,
// no goroutine is started and a ConstructionFailure error is returned.
func New[S any](capacity, index int, newState func() (S, error), opts ...Option[S]) (*Lane[S], error) {
	cfg := defaultConfig[S]()
	for _, opt := range opts {
		opt(&cfg)
	}

	state, err := newState()
	if err != nil {
		return nil, api.NewError(api.ErrCodeConstruction, "lane: state constructor failed").
			WithContext("index", index).
			WithContext("cause", err.Error())
	}

	l := &Lane[S]{
		index:       index,
		state:       state,
		q:           cfg.queueFactory(capacity),
		sleeper:     backoff.New(),
		doneCh:      make(chan struct{}),
		panicPolicy: cfg.panicPolicy,
	}
	l.lifecycle.Store(int32(lanestats.LaneRunning))

	ready := make(chan struct{})
	go l.run(cfg.bindEnabled, cfg.binder, ready)
	<-ready
	return l, nil
}

// Index returns the lane's immutable position in its dispatcher's lane array.
func (l *Lane[S]) Index() int { return l.index }

// Submit enqueues t, blocking until space is available. It returns a
// SubmitAfterStop error without enqueueing if the lane is not Running.
func (l *Lane[S]) Submit(t api.Thunk[S]) error {
	if lanestats.LaneState(l.lifecycle.Load()) != lanestats.LaneRunning {
		return submitAfterStopError(l.index)
	}
	l.q.BlockingWrite(t)
	return nil
}

// TrySubmit enqueues t without blocking, returning false if the queue is
// full. It returns a SubmitAfterStop error without enqueueing if the lane
// is not Running.
func (l *Lane[S]) TrySubmit(t api.Thunk[S]) (bool, error) {
	if lanestats.LaneState(l.lifecycle.Load()) != lanestats.LaneRunning {
		return false, submitAfterStopError(l.index)
	}
	return l.q.TryWrite(t), nil
}

// Stop is idempotent: the first call transitions the lane to Stopping and
// blocks until the worker has drained its queue and exited; later calls
// observe the same outcome without re-triggering the transition.
func (l *Lane[S]) Stop() {
	l.lifecycle.CompareAndSwap(int32(lanestats.LaneRunning), int32(lanestats.LaneStopping))
	<-l.doneCh
	l.lifecycle.Store(int32(lanestats.LaneStopped))
}

// Stats returns a point-in-time snapshot of this lane's counters.
func (l *Lane[S]) Stats() lanestats.LaneStats {
	return lanestats.LaneStats{
		Index:         l.index,
		State:         lanestats.LaneState(l.lifecycle.Load()),
		TasksExecuted: l.executed.Load(),
		TasksPanicked: l.panicked.Load(),
		QueueDepth:    l.q.Len(),
		QueueCapacity: l.q.Cap(),
	}
}

// run is the worker loop: read the lifecycle flag, drain the queue to
// empty, and exit only if the flag read before that drain was no longer
// Running. Any task enqueued before Stop is called is therefore drained
// and executed before the worker exits.
func (l *Lane[S]) run(bindEnabled bool, binder api.Binder, ready chan struct{}) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(l.doneCh)

	if bindEnabled && binder != nil {
		_ = binder.Bind(l.index) // best-effort; failures are logged inside Bind
	}
	close(ready)

	for {
		stopping := lanestats.LaneState(l.lifecycle.Load()) != lanestats.LaneRunning
		for {
			t, ok := l.q.TryRead()
			if !ok {
				break
			}
			l.execute(t)
			l.sleeper.Reset()
		}
		if stopping {
			return
		}
		l.sleeper.Sleep()
	}
}

func (l *Lane[S]) execute(t api.Thunk[S]) {
	l.executed.Add(1)
	if l.panicPolicy == PanicFailStop {
		t(&l.state)
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.panicked.Add(1)
			diag.Logger.Error().
				Int("lane", l.index).
				Interface("panic", r).
				Msg("lane: task panicked, continuing")
		}
	}()
	t(&l.state)
}

func submitAfterStopError(index int) error {
	return api.NewError(api.ErrCodeSubmitAfterStop, "lane: submit after stop").
		WithContext("index", index)
}
