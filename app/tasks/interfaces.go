package tasks

import (
	"context"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/database"
	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

// TaskSchedulerInterface defines the interface for task scheduling operations.
// Used by the main application to manage background task processing.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// OutboxStore is the part of the outbox repository replay needs.
type OutboxStore interface {
	Due(ctx context.Context, limit int) ([]database.OutboxEntry, error)
	MarkDelivered(ctx context.Context, id int64) error
	MarkFailed(ctx context.Context, id int64, reason string, nextAttempt time.Time) error
	MarkAbandoned(ctx context.Context, id int64, reason string) error
}

type PostSubmitter interface {
	SubmitPost(ctx context.Context, s gateway.Submission) (*gateway.WriteResponse, error)
}

type SessionSweeper interface {
	Sweep() int
}

type LimiterSweeper interface {
	SweepLimiters() int
}

var _ OutboxStore = (*database.OutboxRepository)(nil)
