package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// GetKeyIndex returns the persisted key index for a service, 0 if none is stored
func (db *DB) GetKeyIndex(ctx context.Context, service string) (int, error) {
	var idx int
	err := db.pool.QueryRow(ctx,
		`SELECT key_index FROM api_key_state WHERE service = $1`,
		service,
	).Scan(&idx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get key index: %w", err)
	}
	return idx, nil
}

// CompareAndSwapKeyIndex stores next only if the persisted index still equals old.
// A missing row counts as index 0.
func (db *DB) CompareAndSwapKeyIndex(ctx context.Context, service string, old, next int) (bool, error) {
	query := `UPDATE api_key_state SET key_index = $3, updated_at = NOW()
	          WHERE service = $1 AND key_index = $2`
	if old == 0 {
		query = `INSERT INTO api_key_state (service, key_index) VALUES ($1, $3)
		         ON CONFLICT (service) DO UPDATE
		         SET key_index = EXCLUDED.key_index, updated_at = NOW()
		         WHERE api_key_state.key_index = $2`
	}

	result, err := db.pool.Exec(ctx, query, service, old, next)
	if err != nil {
		return false, fmt.Errorf("failed to swap key index: %w", err)
	}
	return result.RowsAffected() == 1, nil
}
