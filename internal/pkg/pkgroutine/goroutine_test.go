package pkgroutine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestNewManagerDefaultMax(t *testing.T) {
	mgr := NewManager(0)
	if got := cap(mgr.sema); got != DefaultMaxGoroutine {
		t.Fatalf("expected cap %d, got %d", DefaultMaxGoroutine, got)
	}
}

func TestManagerCollectsErrors(t *testing.T) {
	mgr := NewManager(2)
	errOne := errors.New("one")
	errTwo := errors.New("two")

	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errOne
	})
	mgr.Go(context.Background(), func(ctx context.Context) error {
		return errTwo
	})

	joined := mgr.Wait()
	if !errors.Is(joined, errOne) || !errors.Is(joined, errTwo) {
		t.Fatalf("expected both errors, got %v", joined)
	}
}

func TestManagerRecoversPanics(t *testing.T) {
	mgr := NewManager(1)
	mgr.Go(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestManagerSkipsCanceledContext(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var ran atomic.Bool
	mgr.Go(ctx, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if ran.Load() {
		t.Fatalf("expected task not to run")
	}
}

func TestManagerEveryRunsUntilCanceled(t *testing.T) {
	mgr := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())

	var ticks atomic.Int32
	mgr.Every(ctx, "test", time.Millisecond, func(ctx context.Context) error {
		if ticks.Add(1) == 3 {
			cancel()
		}
		return errors.New("logged, not fatal")
	})

	done := make(chan error, 1)
	go func() { done <- mgr.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected nil error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		cancel()
		t.Fatal("timeout waiting for periodic task")
	}

	if ticks.Load() < 3 {
		t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
	}
}

func TestManagerEveryIgnoresNonPositiveInterval(t *testing.T) {
	mgr := NewManager(1)
	mgr.Every(context.Background(), "noop", 0, func(ctx context.Context) error {
		t.Fatal("should not run")
		return nil
	})

	if err := mgr.Wait(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}
