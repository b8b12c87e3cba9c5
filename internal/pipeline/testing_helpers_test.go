package pipeline

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/evaluation"
	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/llm"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

const (
	brainstormJSON   = `{"problem":"food waste","solution":"drones","target_audience":"farmers","differentiators":["cheap"]}`
	marketPulseJSON  = `{"trends":["automation"],"sentiment":"positive"}`
	missionJSON      = `{"mission":"Feed the world","vision":"No empty plates"}`
	brandJSON        = `{"tagline":"Grow more","voice":"calm"}`
	businessPlanJSON = `{"executive_summary":"Drones for farms","sections":[{"title":"Market","content":"Large"}]}`
)

// countingStore wraps MemoryStore and counts artifact writes.
type countingStore struct {
	*db.MemoryStore
	writes atomic.Int32
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: db.NewMemoryStore()}
}

func (s *countingStore) PatchArtifact(ctx context.Context, id uuid.UUID, field types.Field, content json.RawMessage) error {
	s.writes.Add(1)
	return s.MemoryStore.PatchArtifact(ctx, id, field, content)
}

func (s *countingStore) seed(owner *uuid.UUID, artifacts map[types.Field]string) uuid.UUID {
	id := uuid.New()
	raw := make(map[types.Field]json.RawMessage, len(artifacts))
	for f, v := range artifacts {
		raw[f] = json.RawMessage(v)
	}
	s.Seed(&db.Startup{
		ID:        id,
		UserID:    owner,
		Name:      "Acme",
		Idea:      "Drones that spot crop disease",
		Artifacts: raw,
	})
	return id
}

func (s *countingStore) artifact(id uuid.UUID, field types.Field) json.RawMessage {
	startup, _ := s.GetStartup(context.Background(), id)
	if startup == nil {
		return nil
	}
	return startup.Artifacts[field]
}

// fakeLLM answers every prompt with the same reply.
type fakeLLM struct {
	mu      sync.Mutex
	reply   string
	err     error
	prompts []string
}

func (f *fakeLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.GenerateJSON(ctx, prompt, tier)
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.reply, f.err
}

func (f *fakeLLM) Close() error { return nil }

func (f *fakeLLM) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

// countingRoutine returns a fixed artifact and records its inputs.
type countingRoutine struct {
	mu     sync.Mutex
	calls  int
	inputs []generation.Inputs
	out    any
	err    error
}

func (r *countingRoutine) routine(_ context.Context, _ *generation.Generator, in generation.Inputs) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.inputs = append(r.inputs, in)
	return r.out, r.err
}

func (r *countingRoutine) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type evaluatorFunc func(ctx context.Context, req evaluation.Request) (string, error)

func (f evaluatorFunc) Evaluate(ctx context.Context, req evaluation.Request) (string, error) {
	return f(ctx, req)
}
