package db

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// Store is the storage surface shared by the PostgreSQL and in-memory backends
type Store interface {
	keys.StateStore

	CreateStartup(ctx context.Context, userID *uuid.UUID, name, idea string) (*Startup, error)
	GetStartup(ctx context.Context, id uuid.UUID) (*Startup, error)
	ListStartups(ctx context.Context, filters StartupFilters) ([]StartupSummary, error)
	PatchArtifact(ctx context.Context, id uuid.UUID, field types.Field, content json.RawMessage) error
	PatchEvaluationURL(ctx context.Context, id uuid.UUID, field types.Field, url string) error
	DeleteStartup(ctx context.Context, id uuid.UUID) error
	Ping(ctx context.Context) error
	Close()
}

var (
	_ Store = (*DB)(nil)
	_ Store = (*MemoryStore)(nil)
)
