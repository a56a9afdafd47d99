package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type sessionRepo struct {
	db *sql.DB
}

func (r *sessionRepo) RecordStart(ctx context.Context, sessionID, mode string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO session_records (session_id, mode, started_at) VALUES (?, ?, ?)`,
		sessionID, mode, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("insert session record: %w", err)
	}
	return nil
}

func (r *sessionRepo) RecordEnd(ctx context.Context, sessionID string, score, turns, durationSecs int, reportDelivered bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE session_records
		 SET ended_at = ?, score = ?, turns = ?, duration_secs = ?, report_delivered = ?
		 WHERE session_id = ?`,
		time.Now().UTC(), score, turns, durationSecs, reportDelivered, sessionID)
	if err != nil {
		return fmt.Errorf("update session record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("no session record for %s", sessionID)
	}
	return nil
}

func (r *sessionRepo) Recent(ctx context.Context, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, session_id, mode, started_at, ended_at, score, turns, duration_secs, report_delivered
		 FROM session_records
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var ended sql.NullTime
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.Mode, &rec.StartedAt, &ended,
			&rec.Score, &rec.Turns, &rec.DurationSecs, &rec.ReportDelivered); err != nil {
			return nil, fmt.Errorf("scan session record: %w", err)
		}
		if ended.Valid {
			rec.EndedAt = ended.Time
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *sessionRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(score), 0), COALESCE(MAX(score), 0), COALESCE(SUM(duration_secs), 0)
		 FROM session_records
		 WHERE ended_at IS NOT NULL`).
		Scan(&t.Sessions, &t.TotalScore, &t.BestScore, &t.TotalSeconds)
	if err != nil {
		return Totals{}, fmt.Errorf("query totals: %w", err)
	}
	return t, nil
}

func (r *sessionRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM session_records`); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}
