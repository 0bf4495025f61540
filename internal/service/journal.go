package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jask/stillpoint/internal/database"
	"github.com/jask/stillpoint/internal/database/repository"
)

// JournalService records finished sittings.
type JournalService struct {
	Sittings *repository.SittingRepo
}

// Record stores a sitting of elapsed seconds. Empty sittings are skipped and
// reported as (nil, nil).
func (s *JournalService) Record(ctx context.Context, started, ended time.Time, elapsed int) (*repository.Sitting, error) {
	if elapsed <= 0 {
		return nil, nil
	}
	if s.Sittings == nil {
		return nil, fmt.Errorf("journal: repo not configured")
	}
	if ended.Before(started) {
		started = ended
	}
	sit := repository.Sitting{
		ID:             uuid.NewString(),
		StartedAt:      database.Stamp(started),
		EndedAt:        database.Stamp(ended),
		ElapsedSeconds: elapsed,
	}
	if err := s.Sittings.Insert(ctx, sit); err != nil {
		return nil, fmt.Errorf("record sitting: %w", err)
	}
	return &sit, nil
}

// Recent lists the newest sittings.
func (s *JournalService) Recent(ctx context.Context, limit int) ([]repository.Sitting, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Sittings.Recent(ctx, limit)
}

// Totals returns the sitting count and total seconds.
func (s *JournalService) Totals(ctx context.Context) (repository.Totals, error) {
	return s.Sittings.Totals(ctx)
}
