package database

import (
	"time"
)

// OutboxEntry is a submission the gateway did not accept, waiting for replay.
type OutboxEntry struct {
	ID            int64
	Name          string
	Email         string
	Subject       string
	Content       string
	Attempts      int
	LastError     string
	CreatedAt     time.Time
	NextAttemptAt time.Time
	DeliveredAt   *time.Time
}

type OutboxCounts struct {
	Pending   int
	Delivered int
	Abandoned int
}
