package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/launch-orchestrator/internal/types"
)

const startupColumns = `id, user_id, name, idea, artifacts, evaluation_urls, created_at, updated_at`

// CreateStartup inserts a new startup record with no artifacts
func (db *DB) CreateStartup(ctx context.Context, userID *uuid.UUID, name, idea string) (*Startup, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO startups (user_id, name, idea)
		 VALUES ($1, $2, $3)
		 RETURNING `+startupColumns,
		userID, name, idea,
	)
	startup, err := scanStartup(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create startup: %w", err)
	}
	return startup, nil
}

// GetStartup retrieves a startup by ID. Returns nil, nil if not found.
func (db *DB) GetStartup(ctx context.Context, id uuid.UUID) (*Startup, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+startupColumns+` FROM startups WHERE id = $1`,
		id,
	)
	startup, err := scanStartup(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get startup: %w", err)
	}
	return startup, nil
}

// ListStartups retrieves recent startups, optionally filtered by owner
func (db *DB) ListStartups(ctx context.Context, filters StartupFilters) ([]StartupSummary, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, user_id, name,
	                 (SELECT COUNT(*) FROM jsonb_object_keys(artifacts)) AS artifact_count,
	                 created_at, updated_at
	          FROM startups WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", argNum)
		args = append(args, *filters.UserID)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	defer rows.Close()

	var startups []StartupSummary
	for rows.Next() {
		var s StartupSummary
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.ArtifactCount, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan startup: %w", err)
		}
		startups = append(startups, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}
	return startups, nil
}

// PatchArtifact sets a single artifact field, leaving every other field
// untouched. The field's evaluation URL is cleared since it scored the old content.
func (db *DB) PatchArtifact(ctx context.Context, id uuid.UUID, field types.Field, content json.RawMessage) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE startups
		 SET artifacts = artifacts || jsonb_build_object($2::text, $3::jsonb),
		     evaluation_urls = evaluation_urls - $2::text,
		     updated_at = NOW()
		 WHERE id = $1`,
		id, string(field), string(content),
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", field, err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// PatchEvaluationURL records the evaluation link for an artifact field
func (db *DB) PatchEvaluationURL(ctx context.Context, id uuid.UUID, field types.Field, url string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE startups
		 SET evaluation_urls = evaluation_urls || jsonb_build_object($2::text, $3::text),
		     updated_at = NOW()
		 WHERE id = $1`,
		id, string(field), url,
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation url %s: %w", field, err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

// DeleteStartup deletes a startup record
func (db *DB) DeleteStartup(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM startups WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete startup: %w", err)
	}
	if result.RowsAffected() == 0 {
		return &NotFoundError{ID: id}
	}
	return nil
}

func scanStartup(row pgx.Row) (*Startup, error) {
	var s Startup
	var artifactsJSON, evaluationsJSON []byte
	if err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Idea, &artifactsJSON, &evaluationsJSON, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}

	s.Artifacts = make(map[types.Field]json.RawMessage)
	if len(artifactsJSON) > 0 {
		if err := json.Unmarshal(artifactsJSON, &s.Artifacts); err != nil {
			return nil, fmt.Errorf("failed to decode artifacts: %w", err)
		}
	}
	s.EvaluationURLs = make(map[types.Field]string)
	if len(evaluationsJSON) > 0 {
		if err := json.Unmarshal(evaluationsJSON, &s.EvaluationURLs); err != nil {
			return nil, fmt.Errorf("failed to decode evaluation urls: %w", err)
		}
	}
	return &s, nil
}
