// Package api
package api

// Thunk is an opaque, single-shot callable that mutates an owned state
// object and returns nothing. The submission layer binds an operation,
// its arguments, and a continuation into a Thunk; once enqueued, a Thunk
// is executed at most once, and only ever observed by its lane's worker.
type Thunk[S any] func(state *S)
