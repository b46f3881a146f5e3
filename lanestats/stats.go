// Package lanestats defines the read-only counters a Lane and a
// Dispatcher expose for introspection. The shape is grounded on the
// worker-pool Stats/WorkerStats convention used elsewhere in the
// retrieval pack: one snapshot struct per worker, taken without blocking
// the worker itself, so observing stats never perturbs scheduling.
package lanestats

// LaneState mirrors the Running/Stopping/Stopped state machine a Lane
// moves through exactly once, in that order, over its lifetime.
type LaneState int32

const (
	LaneRunning LaneState = iota
	LaneStopping
	LaneStopped
)

func (s LaneState) String() string {
	switch s {
	case LaneRunning:
		return "running"
	case LaneStopping:
		return "stopping"
	case LaneStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// LaneStats is a point-in-time snapshot of one lane's counters. All
// fields are read with relaxed atomics and may be slightly stale by the
// time the caller observes them; that is expected for a lock-free worker.
type LaneStats struct {
	// Index is the lane's immutable position in the dispatcher's lane array.
	Index int

	// State is the lane's current lifecycle state.
	State LaneState

	// TasksExecuted is the total number of thunks this lane has run,
	// including ones that panicked under the log-and-continue policy.
	TasksExecuted uint64

	// TasksPanicked is the total number of thunks that panicked during
	// execution. Included in TasksExecuted as well.
	TasksPanicked uint64

	// QueueDepth is the approximate number of thunks currently queued,
	// not counting the one (if any) currently executing.
	QueueDepth int

	// QueueCapacity is the lane's fixed queue capacity.
	QueueCapacity int
}
