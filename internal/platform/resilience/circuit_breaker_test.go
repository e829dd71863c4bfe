package resilience

import (
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(2, time.Minute, 1)

	breaker.RecordFailure()
	if err := breaker.Allow(); err != nil {
		t.Fatalf("circuit should stay closed below threshold: %v", err)
	}

	breaker.RecordFailure()
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if breaker.State() != CircuitStateOpen {
		t.Fatalf("unexpected state: %s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	breaker := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}

	current = current.Add(20 * time.Millisecond)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected half-open probe to be admitted: %v", err)
	}

	breaker.RecordSuccess()
	if breaker.State() != CircuitStateClosed {
		t.Fatalf("expected closed after probe success, got %s", breaker.State())
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	breaker := NewCircuitBreaker(1, 10*time.Millisecond, 1)
	current := time.Now()
	breaker.now = func() time.Time { return current }

	breaker.RecordFailure()
	current = current.Add(20 * time.Millisecond)
	if err := breaker.Allow(); err != nil {
		t.Fatalf("expected probe admitted: %v", err)
	}

	breaker.RecordFailure()
	if err := breaker.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit re-opened, got %v", err)
	}
}
