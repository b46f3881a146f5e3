// Package dispatcher routes keyed work to a fixed array of lanes and
// fans broadcast work out across all of them. Grounded on the teacher
// library's Executor construction/teardown sequencing (build every
// worker before returning, tear every worker down on partial failure,
// stop workers in a stable order) applied to a fixed lane[S] array
// instead of an arbitrary worker pool.
package dispatcher

import (
	"strconv"

	"github.com/corewire/lanedispatch/api"
	"github.com/corewire/lanedispatch/diag"
	"github.com/corewire/lanedispatch/lane"
	"github.com/corewire/lanedispatch/lanestats"
)

// HashFunc maps a routing key to an unsigned integer. The Dispatcher
// reduces it mod N itself.
type HashFunc[K any] func(key K) uint64

// Dispatcher owns a fixed-size array of lanes, built once at
// construction and never resized. K is the routing key type; S is the
// state type each lane owns independently.
type Dispatcher[S any, K any] struct {
	lanes []*lane.Lane[S]
	hash  HashFunc[K]
}

// New builds n lanes, each with the given queue capacity and its own
// state object produced by newState, applying opts to every lane. If
// any lane fails to construct, lanes already built are stopped before
// the error is returned — no goroutine is leaked on a partial failure.
func New[S any, K any](n, capacity int, hash HashFunc[K], newState func() (S, error), opts ...lane.Option[S]) (*Dispatcher[S, K], error) {
	if n <= 0 {
		return nil, api.ErrNoLanes
	}

	lanes := make([]*lane.Lane[S], 0, n)
	for i := 0; i < n; i++ {
		l, err := lane.New(capacity, i, newState, opts...)
		if err != nil {
			for _, built := range lanes {
				built.Stop()
			}
			return nil, err
		}
		lanes = append(lanes, l)
	}

	return &Dispatcher[S, K]{lanes: lanes, hash: hash}, nil
}

// N returns the fixed number of lanes.
func (d *Dispatcher[S, K]) N() int { return len(d.lanes) }

// LaneFor returns the lane that owns key's partition, without submitting
// anything to it. Useful for tests and introspection.
func (d *Dispatcher[S, K]) LaneFor(key K) *lane.Lane[S] {
	return d.lanes[d.hash(key)%uint64(len(d.lanes))]
}

// SubmitKeyed routes t to key's lane, blocking until space is available.
func (d *Dispatcher[S, K]) SubmitKeyed(key K, t api.Thunk[S]) error {
	return d.LaneFor(key).Submit(t)
}

// TrySubmitKeyed routes t to key's lane without blocking.
func (d *Dispatcher[S, K]) TrySubmitKeyed(key K, t api.Thunk[S]) (bool, error) {
	return d.LaneFor(key).TrySubmit(t)
}

// SubmitBroadcast submits the same Thunk value to every lane, blocking
// on each in turn. t is shared across lanes, not cloned: if S's thunks
// close over mutable state outside S, that state is visible to every
// lane's worker concurrently and callers are responsible for its safety.
func (d *Dispatcher[S, K]) SubmitBroadcast(t api.Thunk[S]) error {
	for _, l := range d.lanes {
		if err := l.Submit(t); err != nil {
			return err
		}
	}
	return nil
}

// TrySubmitBroadcast attempts a non-blocking submit of t to every lane
// and reports, per lane index, whether it was accepted. It does not
// stop at the first rejection (a full queue): every lane gets an attempt.
// A lane that returns an error (submit after stop) ends the loop, and
// that error is returned with the flags gathered so far. As with
// SubmitBroadcast, t is shared across lanes, not cloned.
func (d *Dispatcher[S, K]) TrySubmitBroadcast(t api.Thunk[S]) ([]bool, error) {
	accepted := make([]bool, len(d.lanes))
	for i, l := range d.lanes {
		ok, err := l.TrySubmit(t)
		if err != nil {
			return accepted, err
		}
		accepted[i] = ok
	}
	return accepted, nil
}

// Stop stops every lane in index order, each call blocking until that
// lane has drained and exited before moving to the next.
func (d *Dispatcher[S, K]) Stop() {
	for _, l := range d.lanes {
		l.Stop()
	}
}

// Stats returns a snapshot of every lane's counters, in index order.
func (d *Dispatcher[S, K]) Stats() []lanestats.LaneStats {
	stats := make([]lanestats.LaneStats, len(d.lanes))
	for i, l := range d.lanes {
		stats[i] = l.Stats()
	}
	return stats
}

// RegisterProbes adds one named probe per lane to p, reporting that
// lane's lanestats.LaneStats. Names are "lane.<index>".
func (d *Dispatcher[S, K]) RegisterProbes(p *diag.Probes) {
	for _, l := range d.lanes {
		l := l
		p.Register(laneProbeName(l.Index()), func() any { return l.Stats() })
	}
}

func laneProbeName(index int) string {
	return "lane." + strconv.Itoa(index)
}
