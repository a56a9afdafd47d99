package store

import (
	"context"
	"time"
)

// SessionRecord is one row of play history.
type SessionRecord struct {
	ID              int64
	SessionID       string
	Mode            string
	StartedAt       time.Time
	EndedAt         time.Time
	Score           int
	Turns           int
	DurationSecs    int
	ReportDelivered bool
}

// Totals aggregates play history for the stats command.
type Totals struct {
	Sessions     int
	TotalScore   int
	BestScore    int
	TotalSeconds int
}

// SessionRepo records session lifecycles and serves history queries.
type SessionRepo interface {
	// RecordStart inserts a row when a session begins.
	RecordStart(ctx context.Context, sessionID, mode string) error

	// RecordEnd fills in the outcome when the session completes.
	RecordEnd(ctx context.Context, sessionID string, score, turns, durationSecs int, reportDelivered bool) error

	// Recent returns the most recently started sessions, newest first.
	Recent(ctx context.Context, limit int) ([]SessionRecord, error)

	// Totals aggregates across all finished sessions.
	Totals(ctx context.Context) (Totals, error)

	// Reset deletes all history.
	Reset(ctx context.Context) error
}
