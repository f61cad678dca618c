package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/database"
	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

const (
	replayBatchSize  = 20
	replayBaseDelay  = time.Minute
	replayMaxBackoff = 6 * time.Hour

	// MaxReplayAttempts bounds how often one entry is resubmitted.
	MaxReplayAttempts = 10
)

// ReplayOutboxTask resubmits queued submissions. A network failure pushes
// the entry back with exponential backoff. A rejection, or the last allowed
// attempt failing, abandons it. The task itself only fails when the outbox
// cannot be read.
type ReplayOutboxTask struct {
	Task
	outbox    OutboxStore
	submitter PostSubmitter
	now       func() time.Time
}

func NewReplayOutboxTask(outbox OutboxStore, submitter PostSubmitter) *ReplayOutboxTask {
	return &ReplayOutboxTask{
		Task:      NewTask(TaskTypeReplayOutbox, "outbox"),
		outbox:    outbox,
		submitter: submitter,
		now:       time.Now,
	}
}

func (t *ReplayOutboxTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	entries, err := t.outbox.Due(ctx, replayBatchSize)
	if err != nil {
		return fmt.Errorf("failed to load due submissions: %w", err)
	}

	if len(entries) == 0 {
		slog.Debug("No queued submissions due for replay")
		return nil
	}

	delivered := 0
	for _, entry := range entries {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if t.replay(ctx, entry) {
			delivered++
		}
	}

	slog.Info("Task completed",
		"type", "ReplayOutbox",
		"duration", t.GetDuration(),
		"due", len(entries),
		"delivered", delivered,
		"deferred", len(entries)-delivered)

	return nil
}

func (t *ReplayOutboxTask) replay(ctx context.Context, entry database.OutboxEntry) bool {
	_, err := t.submitter.SubmitPost(ctx, gateway.Submission{
		Name:    entry.Name,
		Email:   entry.Email,
		Subject: entry.Subject,
		Content: entry.Content,
	})
	if err != nil {
		attempts := entry.Attempts + 1
		if gateway.IsRejection(err) || attempts >= MaxReplayAttempts {
			slog.Warn("Queued submission abandoned", "id", entry.ID, "attempts", attempts, "error", err)
			if markErr := t.outbox.MarkAbandoned(ctx, entry.ID, err.Error()); markErr != nil {
				slog.Error("Failed to record abandoned submission", "id", entry.ID, "error", markErr)
			}
			return false
		}

		next := t.now().Add(ReplayBackoff(attempts))
		slog.Warn("Queued submission replay failed", "id", entry.ID, "attempts", attempts, "next_attempt_at", next, "error", err)
		if markErr := t.outbox.MarkFailed(ctx, entry.ID, err.Error(), next); markErr != nil {
			slog.Error("Failed to record replay failure", "id", entry.ID, "error", markErr)
		}
		return false
	}

	if err := t.outbox.MarkDelivered(ctx, entry.ID); err != nil {
		slog.Error("Failed to mark submission delivered", "id", entry.ID, "error", err)
		return false
	}

	slog.Info("Queued submission delivered", "id", entry.ID, "subject", entry.Subject)
	return true
}

// ReplayBackoff doubles from one minute per failed attempt, capped at six
// hours.
func ReplayBackoff(attempts int) time.Duration {
	delay := replayBaseDelay
	for i := 1; i < attempts; i++ {
		delay *= 2
		if delay >= replayMaxBackoff {
			return replayMaxBackoff
		}
	}
	return delay
}
