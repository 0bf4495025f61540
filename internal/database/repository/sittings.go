package repository

import (
	"context"
	"database/sql"
)

// SittingRepo handles the sittings journal.
type SittingRepo struct {
	db *sql.DB
}

func NewSittingRepo(db *sql.DB) *SittingRepo { return &SittingRepo{db: db} }

func (r *SittingRepo) Insert(ctx context.Context, s Sitting) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO sittings(id, started_at, ended_at, elapsed_seconds, created_at)
	VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP);
	`, s.ID, s.StartedAt.UTC(), s.EndedAt.UTC(), s.ElapsedSeconds)
	return err
}

// Recent returns up to limit sittings, newest first.
func (r *SittingRepo) Recent(ctx context.Context, limit int) ([]Sitting, error) {
	rows, err := r.db.QueryContext(ctx, `
	SELECT id, started_at, ended_at, elapsed_seconds, created_at
	FROM sittings
	ORDER BY ended_at DESC, id
	LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Sitting
	for rows.Next() {
		var s Sitting
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.EndedAt, &s.ElapsedSeconds, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SittingRepo) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*), COALESCE(SUM(elapsed_seconds), 0) FROM sittings`).Scan(&t.Count, &t.Seconds)
	return t, err
}
