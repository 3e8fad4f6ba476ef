package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_CollapsesConcurrentCalls(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32
	var shared atomic.Int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err, wasShared := g.Do("stats:rank:pts:2015-16", func() (any, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "leaders", nil
			})
			if err != nil {
				t.Errorf("flight call failed: %v", err)
				return
			}
			if got, _ := v.(string); got != "leaders" {
				t.Errorf("unexpected value %v", v)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("function ran %d times, want 1", got)
	}
	if got := shared.Load(); got != workers-1 {
		t.Fatalf("%d callers reported a shared result, want %d", got, workers-1)
	}
}

func TestSingleFlight_SequentialCallsRunSeparately(t *testing.T) {
	var g SingleFlight
	var calls atomic.Int32

	for i := 0; i < 3; i++ {
		_, _, wasShared := g.Do("stats:seasons", func() (any, error) {
			calls.Add(1)
			return nil, nil
		})
		if wasShared {
			t.Fatalf("call %d unexpectedly shared", i)
		}
	}

	if got := calls.Load(); got != 3 {
		t.Fatalf("function ran %d times, want 3", got)
	}
}
