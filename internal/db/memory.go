package db

import (
	"bytes"
	"context"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// MemoryStore is a process-local Store used by tests and runs without DATABASE_URL.
type MemoryStore struct {
	*keys.MemoryState

	mu       sync.RWMutex
	startups map[uuid.UUID]*Startup
	now      func() time.Time
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		MemoryState: keys.NewMemoryState(),
		startups:    make(map[uuid.UUID]*Startup),
		now:         time.Now,
	}
}

// CreateStartup implements Store
func (m *MemoryStore) CreateStartup(_ context.Context, userID *uuid.UUID, name, idea string) (*Startup, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	s := &Startup{
		ID:             uuid.New(),
		UserID:         userID,
		Name:           name,
		Idea:           idea,
		Artifacts:      make(map[types.Field]json.RawMessage),
		EvaluationURLs: make(map[types.Field]string),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.startups[s.ID] = s
	return cloneStartup(s), nil
}

// Seed stores a startup with pre-populated artifacts
func (m *MemoryStore) Seed(s *Startup) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := cloneStartup(s)
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
		s.ID = c.ID
	}
	m.startups[c.ID] = c
}

// GetStartup implements Store. Returns nil, nil if not found.
func (m *MemoryStore) GetStartup(_ context.Context, id uuid.UUID) (*Startup, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.startups[id]
	if !ok {
		return nil, nil
	}
	return cloneStartup(s), nil
}

// ListStartups implements Store
func (m *MemoryStore) ListStartups(_ context.Context, filters StartupFilters) ([]StartupSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if filters.Limit == 0 {
		filters.Limit = 50
	}

	var out []StartupSummary
	for _, s := range m.startups {
		if filters.UserID != nil && (s.UserID == nil || *s.UserID != *filters.UserID) {
			continue
		}
		out = append(out, StartupSummary{
			ID:            s.ID,
			UserID:        s.UserID,
			Name:          s.Name,
			ArtifactCount: len(s.Artifacts),
			CreatedAt:     s.CreatedAt,
			UpdatedAt:     s.UpdatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > filters.Limit {
		out = out[:filters.Limit]
	}
	return out, nil
}

// PatchArtifact implements Store
func (m *MemoryStore) PatchArtifact(_ context.Context, id uuid.UUID, field types.Field, content json.RawMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.startups[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	s.Artifacts[field] = bytes.Clone(content)
	delete(s.EvaluationURLs, field)
	s.UpdatedAt = m.now()
	return nil
}

// PatchEvaluationURL implements Store
func (m *MemoryStore) PatchEvaluationURL(_ context.Context, id uuid.UUID, field types.Field, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.startups[id]
	if !ok {
		return &NotFoundError{ID: id}
	}
	s.EvaluationURLs[field] = url
	s.UpdatedAt = m.now()
	return nil
}

// DeleteStartup implements Store
func (m *MemoryStore) DeleteStartup(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.startups[id]; !ok {
		return &NotFoundError{ID: id}
	}
	delete(m.startups, id)
	return nil
}

// Ping implements Store
func (m *MemoryStore) Ping(context.Context) error { return nil }

// Close implements Store
func (m *MemoryStore) Close() {}

func cloneStartup(s *Startup) *Startup {
	c := *s
	c.Artifacts = make(map[types.Field]json.RawMessage, len(s.Artifacts))
	for k, v := range s.Artifacts {
		c.Artifacts[k] = bytes.Clone(v)
	}
	c.EvaluationURLs = make(map[types.Field]string, len(s.EvaluationURLs))
	for k, v := range s.EvaluationURLs {
		c.EvaluationURLs[k] = v
	}
	if s.UserID != nil {
		id := *s.UserID
		c.UserID = &id
	}
	return &c
}
