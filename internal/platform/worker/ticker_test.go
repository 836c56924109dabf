package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestTickerLoopRunsOnStartAndTicks(t *testing.T) {
	var ticks atomic.Int32

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- TickerLoop(ctx, TickerConfig{
			Name:       "test",
			Interval:   10 * time.Millisecond,
			RunOnStart: true,
			OnTick: func(_ context.Context) {
				ticks.Add(1)
			},
		})
	}()

	deadline := time.After(2 * time.Second)
	for ticks.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("expected at least 3 ticks, got %d", ticks.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()

	err := <-done
	if !errors.Is(err, context.Canceled) {
		t.Errorf("TickerLoop returned %v, want context.Canceled", err)
	}
}

func TestTickerLoopStopsWithoutTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := TickerLoop(ctx, TickerConfig{
		Name:     "test",
		Interval: time.Hour,
		OnTick:   func(_ context.Context) { t.Error("tick should not fire") },
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("TickerLoop returned %v, want context.Canceled", err)
	}
}
