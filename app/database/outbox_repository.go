package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lysyi3m/fitbhaskar/app/gateway"
)

// OutboxRepository handles database operations for queued submissions
type OutboxRepository struct {
	db  *DB
	now func() time.Time
}

func NewOutboxRepository(db *DB) *OutboxRepository {
	return &OutboxRepository{db: db, now: time.Now}
}

// Enqueue stores a failed submission, due for replay immediately.
func (r *OutboxRepository) Enqueue(ctx context.Context, s gateway.Submission, reason string) error {
	now := r.now().Unix()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO submission_outbox (name, email, subject, content, last_error, created_at, next_attempt_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, s.Name, s.Email, s.Subject, s.Content, reason, now, now)
	if err != nil {
		return fmt.Errorf("failed to enqueue submission: %w", err)
	}

	return nil
}

// Due returns pending entries whose next attempt is not in the future,
// oldest first. Delivered and abandoned entries are never due.
func (r *OutboxRepository) Due(ctx context.Context, limit int) ([]OutboxEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, subject, content, attempts, last_error, created_at, next_attempt_at
		FROM submission_outbox
		WHERE delivered_at IS NULL AND abandoned_at IS NULL AND next_attempt_at <= ?
		ORDER BY id
		LIMIT ?
	`, r.now().Unix(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query due submissions: %w", err)
	}
	defer rows.Close()

	var entries []OutboxEntry
	for rows.Next() {
		var e OutboxEntry
		var createdAt, nextAttemptAt int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Subject, &e.Content,
			&e.Attempts, &e.LastError, &createdAt, &nextAttemptAt); err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		e.NextAttemptAt = time.Unix(nextAttemptAt, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return entries, nil
}

func (r *OutboxRepository) MarkDelivered(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE submission_outbox
		SET delivered_at = ?, attempts = attempts + 1, last_error = ''
		WHERE id = ? AND delivered_at IS NULL AND abandoned_at IS NULL
	`, r.now().Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to mark submission delivered: %w", err)
	}

	return requireRow(res, id)
}

// MarkFailed records a failed replay and schedules the next one.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id int64, reason string, nextAttempt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE submission_outbox
		SET attempts = attempts + 1, last_error = ?, next_attempt_at = ?
		WHERE id = ? AND delivered_at IS NULL AND abandoned_at IS NULL
	`, reason, nextAttempt.Unix(), id)
	if err != nil {
		return fmt.Errorf("failed to mark submission failed: %w", err)
	}

	return requireRow(res, id)
}

// MarkAbandoned records a final failed replay. The entry is kept for
// inspection but never replayed again.
func (r *OutboxRepository) MarkAbandoned(ctx context.Context, id int64, reason string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE submission_outbox
		SET abandoned_at = ?, attempts = attempts + 1, last_error = ?
		WHERE id = ? AND delivered_at IS NULL AND abandoned_at IS NULL
	`, r.now().Unix(), reason, id)
	if err != nil {
		return fmt.Errorf("failed to mark submission abandoned: %w", err)
	}

	return requireRow(res, id)
}

func (r *OutboxRepository) Counts(ctx context.Context) (OutboxCounts, error) {
	var counts OutboxCounts
	var pending, delivered, abandoned sql.NullInt64

	err := r.db.QueryRowContext(ctx, `
		SELECT
			SUM(CASE WHEN delivered_at IS NULL AND abandoned_at IS NULL THEN 1 ELSE 0 END),
			SUM(CASE WHEN delivered_at IS NOT NULL THEN 1 ELSE 0 END),
			SUM(CASE WHEN abandoned_at IS NOT NULL THEN 1 ELSE 0 END)
		FROM submission_outbox
	`).Scan(&pending, &delivered, &abandoned)
	if err != nil {
		return counts, fmt.Errorf("failed to count submissions: %w", err)
	}

	counts.Pending = int(pending.Int64)
	counts.Delivered = int(delivered.Int64)
	counts.Abandoned = int(abandoned.Int64)
	return counts, nil
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("pending submission %d not found", id)
	}
	return nil
}
