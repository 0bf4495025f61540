package service

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jask/stillpoint/internal/database"
)

// MaintenanceService houses destructive actions on the journal.
type MaintenanceService struct {
	DB *sql.DB
}

// ClearJournal deletes every recorded sitting and returns how many were
// removed. The schema is kept.
func (s *MaintenanceService) ClearJournal(ctx context.Context) (int64, error) {
	if s.DB == nil {
		return 0, fmt.Errorf("maintenance: db not configured")
	}
	var n int64
	if err := database.WithTx(ctx, s.DB, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM sittings")
		if err != nil {
			return fmt.Errorf("clear sittings: %w", err)
		}
		n, err = res.RowsAffected()
		return err
	}); err != nil {
		return 0, err
	}
	_, _ = s.DB.ExecContext(ctx, "VACUUM")
	return n, nil
}
