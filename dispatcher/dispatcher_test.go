package dispatcher

import (
	"sync"
	"testing"
	"time"

	"github.com/corewire/lanedispatch/lane"
)

type accumulator struct {
	total int
}

func newAccumulator() (accumulator, error) { return accumulator{total: 110}, nil }

var identityHash HashFunc[int] = func(k int) uint64 { return uint64(k) }

func noAffinity[S any]() lane.Option[S] { return lane.WithAffinityBinding[S](false) }

// S1: single-key accumulator, N=10, capacity=1000, initial 110.
func TestSingleKeyAccumulator(t *testing.T) {
	d, err := New(10, 1000, identityHash, newAccumulator, noAffinity[accumulator]())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Stop()

	if err := d.SubmitKeyed(0, func(s *accumulator) { s.total += 1 }); err != nil {
		t.Fatalf("submit add(1)@0: %v", err)
	}
	if err := d.SubmitKeyed(1, func(s *accumulator) { s.total += 6 }); err != nil {
		t.Fatalf("submit add(6)@1: %v", err)
	}
	if err := d.SubmitKeyed(0, func(s *accumulator) { s.total += 2 }); err != nil {
		t.Fatalf("submit add(2)@0: %v", err)
	}

	r := make(chan int, 1)
	if err := d.SubmitKeyed(0, func(s *accumulator) { r <- s.total }); err != nil {
		t.Fatalf("submit get@0: %v", err)
	}

	select {
	case got := <-r:
		if got != 113 {
			t.Fatalf("expected r=113, got %d", got)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for get@0")
	}
}

// S2: broadcast then per-partition read.
func TestBroadcastThenPerPartitionRead(t *testing.T) {
	d, err := New(10, 1000, identityHash, newAccumulator, noAffinity[accumulator]())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Stop()

	mustSubmit := func(key int, delta int) {
		if err := d.SubmitKeyed(key, func(s *accumulator) { s.total += delta }); err != nil {
			t.Fatalf("submit add(%d)@%d: %v", delta, key, err)
		}
	}
	mustSubmit(0, 1)
	mustSubmit(1, 6)
	mustSubmit(0, 2)

	if err := d.SubmitBroadcast(func(s *accumulator) { s.total += 1 }); err != nil {
		t.Fatalf("submit broadcast add(1): %v", err)
	}

	read := func(key int) int {
		r := make(chan int, 1)
		if err := d.SubmitKeyed(key, func(s *accumulator) { r <- s.total }); err != nil {
			t.Fatalf("submit get@%d: %v", key, err)
		}
		select {
		case v := <-r:
			return v
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for get@%d", key)
			return -1
		}
	}

	r0, r1, r2 := read(0), read(1), read(2)
	if r0 != 114 {
		t.Fatalf("expected r0=114, got %d", r0)
	}
	if r1 != 117 {
		t.Fatalf("expected r1=117, got %d", r1)
	}
	if r2 != 111 {
		t.Fatalf("expected r2=111, got %d", r2)
	}
}

// S4: backpressure. N=1, capacity=4; worker wedged by a slow op.
func TestBackpressureSingleLane(t *testing.T) {
	d, err := New(1, 4, identityHash, newAccumulator, noAffinity[accumulator]())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Stop()

	block := make(chan struct{})
	release := make(chan struct{})
	if ok, err := d.TrySubmitKeyed(0, func(s *accumulator) {
		close(block)
		<-release
	}); err != nil || !ok {
		t.Fatalf("expected the wedging submit to succeed, ok=%v err=%v", ok, err)
	}
	<-block

	accepted := 0
	for i := 0; i < 5; i++ {
		ok, err := d.TrySubmitKeyed(0, func(s *accumulator) {})
		if err != nil {
			t.Fatalf("TrySubmitKeyed: %v", err)
		}
		if ok {
			accepted++
		} else if i != 4 {
			t.Fatalf("expected only the 5th try_submit to fail, failed at %d", i)
		}
	}
	if accepted != 4 {
		t.Fatalf("expected 4 of 5 try_submit calls to succeed, got %d", accepted)
	}

	close(release)
	time.Sleep(10 * time.Millisecond)

	if ok, err := d.TrySubmitKeyed(0, func(s *accumulator) {}); err != nil || !ok {
		t.Fatalf("expected the 6th try_submit after drain to succeed, ok=%v err=%v", ok, err)
	}
}

// S5: stop drains then halts — this implementation chooses drain-before-exit.
func TestStopDrainsAllBeforeReturning(t *testing.T) {
	d, err := New(4, 1000, identityHash, newAccumulator, noAffinity[accumulator]())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var mu sync.Mutex
	fired := 0
	const n = 100
	for i := 0; i < n; i++ {
		if err := d.SubmitKeyed(i%4, func(s *accumulator) {
			mu.Lock()
			fired++
			mu.Unlock()
		}); err != nil {
			t.Fatalf("SubmitKeyed: %v", err)
		}
	}

	d.Stop()

	mu.Lock()
	got := fired
	mu.Unlock()
	if got != n {
		t.Fatalf("expected all %d continuations to fire before Stop returned, got %d", n, got)
	}
}

// Routing purity: lane(k) is constant for the Dispatcher's lifetime.
func TestRoutingIsStable(t *testing.T) {
	d, err := New(8, 10, identityHash, newAccumulator, noAffinity[accumulator]())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Stop()

	for k := 0; k < 64; k++ {
		first := d.LaneFor(k).Index()
		for i := 0; i < 5; i++ {
			if got := d.LaneFor(k).Index(); got != first {
				t.Fatalf("routing for key %d changed: %d -> %d", k, first, got)
			}
		}
	}
}

func TestPartialConstructionFailureReturnsError(t *testing.T) {
	calls := 0
	failingState := func() (accumulator, error) {
		calls++
		if calls == 3 {
			return accumulator{}, errConstruction
		}
		return accumulator{}, nil
	}

	_, err := New(5, 10, identityHash, failingState, noAffinity[accumulator]())
	if err == nil {
		t.Fatal("expected construction to fail")
	}
}

var errConstruction = sentinelErr("state construction failed")

type sentinelErr string

func (e sentinelErr) Error() string { return string(e) }
