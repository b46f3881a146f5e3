// Package api
//
// Topology and affinity contracts consumed by the lane runtime. The
// concrete platform bindings live in the affinity package; this package
// only carries the shapes so that lane and dispatcher never import a
// platform-specific file directly.
package api

// CoreInfo reports best-effort logical core topology. EfficiencyCores is
// zero on platforms that do not distinguish performance/efficiency cores,
// or where the distinction could not be determined.
type CoreInfo struct {
	PerformanceCores int
	EfficiencyCores  int
}

// Total returns the total logical core count the topology query observed.
func (c CoreInfo) Total() int {
	return c.PerformanceCores + c.EfficiencyCores
}

// Binder is the platform boundary a Lane consumes to pin its worker to a
// logical core. Binding failure is never a correctness dependency: callers
// must treat a non-nil error as "continue unpinned", not as fatal.
type Binder interface {
	// CoreInfo performs a best-effort topology query.
	CoreInfo() CoreInfo
	// Bind requests that the calling OS thread run on coreID. The affinity
	// package's implementation logs an unsupported platform once per process
	// per distinct reason, and logs every other bind failure each time.
	Bind(coreID int) error
}
