package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_DeduplicatesConcurrentCalls(t *testing.T) {
	var flight SingleFlight
	var calls atomic.Int32
	release := make(chan struct{})

	var wg, entered sync.WaitGroup
	results := make([]any, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		entered.Add(1)
		go func(idx int) {
			defer wg.Done()
			entered.Done()
			val, err, _ := flight.Do("key", func() (any, error) {
				calls.Add(1)
				<-release
				return "value", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[idx] = val
		}(i)
	}

	// Release the loader only once every caller is inside Do, so the
	// calls actually overlap and can be deduplicated.
	entered.Wait()
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 loader call, got %d", got)
	}
	for _, val := range results {
		if val != "value" {
			t.Fatalf("unexpected value: %v", val)
		}
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	var flight SingleFlight
	var calls atomic.Int32

	for _, key := range []string{"a", "b", "c"} {
		if _, err, shared := flight.Do(key, func() (any, error) {
			calls.Add(1)
			return key, nil
		}); err != nil || shared {
			t.Fatalf("unexpected result for %s: err=%v shared=%v", key, err, shared)
		}
	}

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 loader calls, got %d", got)
	}
}
