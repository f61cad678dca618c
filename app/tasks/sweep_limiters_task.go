package tasks

import (
	"context"
	"log/slog"
)

type SweepLimitersTask struct {
	Task
	limiters LimiterSweeper
}

func NewSweepLimitersTask(limiters LimiterSweeper) *SweepLimitersTask {
	return &SweepLimitersTask{
		Task:     NewTask(TaskTypeSweepLimiters, "limiters"),
		limiters: limiters,
	}
}

func (t *SweepLimitersTask) Execute(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if removed := t.limiters.SweepLimiters(); removed > 0 {
		slog.Debug("Task completed",
			"type", "SweepLimiters",
			"duration", t.GetDuration(),
			"idle_clients", removed)
	}

	return nil
}
