// Package submit is the public contract layer that binds an operation,
// its arguments, and a continuation into a single Thunk a Lane or
// Dispatcher can execute. It exists so callers never hand-roll a
// closure themselves: the generic helpers here enforce, at compile
// time, that the continuation's parameter matches the operation's
// return type.
package submit

import "github.com/corewire/lanedispatch/api"

// Target is satisfied by anything that accepts a Thunk the way a single
// lane does: *lane.Lane[S] implements this without importing package lane here.
type Target[S any] interface {
	Submit(api.Thunk[S]) error
	TrySubmit(api.Thunk[S]) (bool, error)
}

// Broadcaster is satisfied by anything that can fan a Thunk out across
// every lane it owns: *dispatcher.Dispatcher[S, K] implements this.
type Broadcaster[S any] interface {
	SubmitBroadcast(api.Thunk[S]) error
	TrySubmitBroadcast(api.Thunk[S]) ([]bool, error)
}

// Op0 submits a nullary, resultless operation and invokes cont once it
// has run against the owned state.
func Op0[S any](t Target[S], op func(*S), cont func()) error {
	return t.Submit(func(s *S) {
		op(s)
		if cont != nil {
			cont()
		}
	})
}

// TryOp0 is the non-blocking variant of Op0.
func TryOp0[S any](t Target[S], op func(*S), cont func()) (bool, error) {
	return t.TrySubmit(func(s *S) {
		op(s)
		if cont != nil {
			cont()
		}
	})
}

// OpR0 submits a nullary operation that produces a result of type R and
// invokes cont with that result once it has run.
func OpR0[S any, R any](t Target[S], op func(*S) R, cont func(R)) error {
	return t.Submit(func(s *S) {
		r := op(s)
		if cont != nil {
			cont(r)
		}
	})
}

// TryOpR0 is the non-blocking variant of OpR0.
func TryOpR0[S any, R any](t Target[S], op func(*S) R, cont func(R)) (bool, error) {
	return t.TrySubmit(func(s *S) {
		r := op(s)
		if cont != nil {
			cont(r)
		}
	})
}

// Op1 submits a one-argument, resultless operation.
func Op1[S any, A any](t Target[S], op func(*S, A), arg A, cont func()) error {
	return t.Submit(func(s *S) {
		op(s, arg)
		if cont != nil {
			cont()
		}
	})
}

// TryOp1 is the non-blocking variant of Op1.
func TryOp1[S any, A any](t Target[S], op func(*S, A), arg A, cont func()) (bool, error) {
	return t.TrySubmit(func(s *S) {
		op(s, arg)
		if cont != nil {
			cont()
		}
	})
}

// OpR1 submits a one-argument operation that produces a result of type R.
func OpR1[S any, A any, R any](t Target[S], op func(*S, A) R, arg A, cont func(R)) error {
	return t.Submit(func(s *S) {
		r := op(s, arg)
		if cont != nil {
			cont(r)
		}
	})
}

// TryOpR1 is the non-blocking variant of OpR1.
func TryOpR1[S any, A any, R any](t Target[S], op func(*S, A) R, arg A, cont func(R)) (bool, error) {
	return t.TrySubmit(func(s *S) {
		r := op(s, arg)
		if cont != nil {
			cont(r)
		}
	})
}

// Broadcast0 fans a nullary, resultless operation out to every lane a
// Broadcaster owns. cont is shared, not cloned, across lanes: if it
// closes over mutable state it must tolerate concurrent invocation.
func Broadcast0[S any](b Broadcaster[S], op func(*S), cont func()) error {
	return b.SubmitBroadcast(func(s *S) {
		op(s)
		if cont != nil {
			cont()
		}
	})
}

// BroadcastR0 fans a nullary operation with a result out to every lane.
// cont is shared, not cloned, across lanes.
func BroadcastR0[S any, R any](b Broadcaster[S], op func(*S) R, cont func(R)) error {
	return b.SubmitBroadcast(func(s *S) {
		r := op(s)
		if cont != nil {
			cont(r)
		}
	})
}

// Broadcast1 fans a one-argument, resultless operation out to every lane.
// cont is shared, not cloned, across lanes.
func Broadcast1[S any, A any](b Broadcaster[S], op func(*S, A), arg A, cont func()) error {
	return b.SubmitBroadcast(func(s *S) {
		op(s, arg)
		if cont != nil {
			cont()
		}
	})
}
