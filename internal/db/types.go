package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/types"
)

// Startup is a persisted startup record with its generated artifacts
type Startup struct {
	ID             uuid.UUID                       `json:"id"`
	UserID         *uuid.UUID                      `json:"user_id,omitempty"`
	Name           string                          `json:"name"`
	Idea           string                          `json:"idea"`
	Artifacts      map[types.Field]json.RawMessage `json:"artifacts"`
	EvaluationURLs map[types.Field]string          `json:"evaluation_urls,omitempty"`
	CreatedAt      time.Time                       `json:"created_at"`
	UpdatedAt      time.Time                       `json:"updated_at"`
}

// Has reports whether the artifact field is present
func (s *Startup) Has(field types.Field) bool {
	raw, ok := s.Artifacts[field]
	return ok && len(raw) > 0 && string(raw) != "null"
}

// Fields returns the names of the populated artifact fields
func (s *Startup) Fields() []types.Field {
	fields := make([]types.Field, 0, len(s.Artifacts))
	for f := range s.Artifacts {
		if s.Has(f) {
			fields = append(fields, f)
		}
	}
	return fields
}

// StartupSummary is a lightweight view of a startup for listing
type StartupSummary struct {
	ID            uuid.UUID  `json:"id"`
	UserID        *uuid.UUID `json:"user_id,omitempty"`
	Name          string     `json:"name"`
	ArtifactCount int        `json:"artifact_count"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// StartupFilters holds optional filters for listing startups
type StartupFilters struct {
	UserID *uuid.UUID
	Limit  int
}

// NotFoundError is returned when a startup record does not exist
type NotFoundError struct {
	ID uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("startup not found: %s", e.ID)
}
