package tasks

import (
	"context"
	"log/slog"
)

type SweepSessionsTask struct {
	Task
	sessions SessionSweeper
}

func NewSweepSessionsTask(sessions SessionSweeper) *SweepSessionsTask {
	return &SweepSessionsTask{
		Task:     NewTask(TaskTypeSweepSessions, "sessions"),
		sessions: sessions,
	}
}

func (t *SweepSessionsTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	removed := t.sessions.Sweep()
	if removed > 0 {
		slog.Info("Task completed",
			"type", "SweepSessions",
			"duration", t.GetDuration(),
			"expired", removed)
	}

	return nil
}
