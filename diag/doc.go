// Package diag provides the runtime's optional diagnostic surface:
// a zerolog-backed logger for the handful of non-fatal failure paths
// the runtime has (affinity binding, task panics, join failures), and a
// named probe registry a Dispatcher can use to publish per-lane snapshots
// without depending on any particular metrics backend.
//
// Grounded on the teacher library's debug-probe and metrics-registry
// tooling, adapted to drop the hot-reload/listener machinery that
// conflicts with this runtime's fixed-topology, no-dynamic-resize
// design (see DESIGN.md).
package diag
