package tasks

import (
	"context"
	"testing"
)

type countingSweeper struct {
	calls int
}

func (s *countingSweeper) SweepLimiters() int {
	s.calls++
	return 2
}

func TestSweepLimitersTask_Execute(t *testing.T) {
	sweeper := &countingSweeper{}

	if err := NewSweepLimitersTask(sweeper).Execute(context.Background()); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if sweeper.calls != 1 {
		t.Errorf("Expected one sweep, got %d", sweeper.calls)
	}
}

func TestSweepLimitersTask_CancelledContext(t *testing.T) {
	sweeper := &countingSweeper{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := NewSweepLimitersTask(sweeper).Execute(ctx); err == nil {
		t.Error("Expected cancelled context to stop the sweep")
	}
	if sweeper.calls != 0 {
		t.Errorf("Expected no sweep after cancel, got %d", sweeper.calls)
	}
}
