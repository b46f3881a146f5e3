package dispatcher

import (
	"sync"
	"testing"
	"time"
)

type pipelineCounter struct{ total int }

func newPipelineCounter() (pipelineCounter, error) { return pipelineCounter{}, nil }

// S3 (scaled): three dispatchers chained start -> mid -> end, each add
// forwarded via its continuation into the next layer at the same key.
// The full scenario uses ten million adds; this test uses a smaller
// count to keep the suite fast while exercising the identical chain.
func TestThreeDispatcherPipelineSumsToN(t *testing.T) {
	start, err := New(10, 4096, identityHash, newPipelineCounter, noAffinity[pipelineCounter]())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	mid, err := New(10, 4096, identityHash, newPipelineCounter, noAffinity[pipelineCounter]())
	if err != nil {
		t.Fatalf("mid: %v", err)
	}
	end, err := New(1, 4096, identityHash, newPipelineCounter, noAffinity[pipelineCounter]())
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	defer start.Stop()
	defer mid.Stop()
	defer end.Stop()

	const n = 100_000
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		key := i % 10
		if err := start.SubmitKeyed(key, func(s *pipelineCounter) {
			s.total++
			_ = mid.SubmitKeyed(key, func(s *pipelineCounter) {
				s.total++
				_ = end.SubmitKeyed(0, func(s *pipelineCounter) {
					s.total++
					wg.Done()
				})
			})
		}); err != nil {
			t.Fatalf("SubmitKeyed: %v", err)
		}
	}
	wg.Wait()

	r := make(chan int, 1)
	if err := end.SubmitKeyed(0, func(s *pipelineCounter) { r <- s.total }); err != nil {
		t.Fatalf("final get: %v", err)
	}
	select {
	case total := <-r:
		if total != n {
			t.Fatalf("expected end total %d, got %d", n, total)
		}
	case <-time.After(30 * time.Second):
		t.Fatal("timed out waiting for pipeline drain")
	}
}
