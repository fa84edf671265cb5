// Package ingest runs a full load: authors first, then works.
package ingest

import (
	"time"

	"bookloader/internal/dump"
)

const (
	StatusRunning   = "RUNNING"
	StatusCompleted = "COMPLETED"
	StatusFailed    = "FAILED"
)

type Run struct {
	ID          string
	StartedAt   time.Time
	FinishedAt  *time.Time
	Status      string // RUNNING, COMPLETED, FAILED
	AuthorsPath string
	WorksPath   string
	Authors     dump.Stats
	Works       dump.Stats
	Error       string
}
