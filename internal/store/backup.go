package store

import (
	"context"
	"fmt"
)

// RunBackupMaintenance keeps a sport's backup table in sync with its
// bets table: duplicate backup rows are collapsed to the most recently
// created row per id, a unique index on id is ensured, and rows newer
// than the window are copied over, skipping ids already present.
// Returns the number of rows inserted during the sync.
func (s *Store) RunBackupMaintenance(ctx context.Context, table, backupTable string, days int) (int64, error) {
	if err := s.dedupeBackup(ctx, backupTable); err != nil {
		return 0, err
	}
	if err := s.ensureUniqueIndex(ctx, backupTable); err != nil {
		return 0, err
	}
	return s.syncRecentToBackup(ctx, table, backupTable, days)
}

// dedupeBackup deletes duplicate backup rows keeping the latest
// created_at per id. ctid breaks created_at ties deterministically.
func (s *Store) dedupeBackup(ctx context.Context, backupTable string) error {
	query := fmt.Sprintf(`
		WITH ranked AS (
		  SELECT ctid, id,
		         ROW_NUMBER() OVER (
		           PARTITION BY id
		           ORDER BY created_at DESC, ctid DESC
		         ) AS rn
		  FROM %[1]s
		)
		DELETE FROM %[1]s b
		USING ranked r
		WHERE b.ctid = r.ctid
		  AND r.rn > 1`, backupTable)
	if err := s.db.WithContext(ctx).Exec(query).Error; err != nil {
		return fmt.Errorf("failed to dedupe %s: %w", backupTable, err)
	}
	return nil
}

func (s *Store) ensureUniqueIndex(ctx context.Context, backupTable string) error {
	indexName := fmt.Sprintf("ux_%s_id", backupTable)
	query := fmt.Sprintf(`
		DO $$
		BEGIN
		  IF NOT EXISTS (
		    SELECT 1
		    FROM   pg_indexes
		    WHERE  schemaname = 'public'
		    AND    indexname = '%[1]s'
		  ) THEN
		    EXECUTE 'CREATE UNIQUE INDEX %[1]s ON public.%[2]s (id)';
		  END IF;
		END$$`, indexName, backupTable)
	if err := s.db.WithContext(ctx).Exec(query).Error; err != nil {
		return fmt.Errorf("failed to ensure unique index on %s: %w", backupTable, err)
	}
	return nil
}

func (s *Store) syncRecentToBackup(ctx context.Context, table, backupTable string, days int) (int64, error) {
	query := fmt.Sprintf(`
		INSERT INTO %[1]s (id, analysis, created_at, price, game_time, game_tag)
		SELECT b.id, b.analysis, b.created_at, b.price, b.game_time, b.game_tag
		FROM %[2]s b
		WHERE b.created_at > NOW() - (?::interval)
		ON CONFLICT (id) DO NOTHING`, backupTable, table)
	result := s.db.WithContext(ctx).Exec(query, fmt.Sprintf("%d days", days))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to sync %s to %s: %w", table, backupTable, result.Error)
	}
	return result.RowsAffected, nil
}
