package db

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/launch-orchestrator/internal/types"
)

func TestMemoryStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	owner := uuid.New()

	created, err := store.CreateStartup(ctx, &owner, "Acme", "Drones for farms")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Empty(t, created.Artifacts)

	got, err := store.GetStartup(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "Drones for farms", got.Idea)
	assert.Equal(t, owner, *got.UserID)

	missing, err := store.GetStartup(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMemoryStore_PatchArtifactOnlyTouchesOneField(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s, err := store.CreateStartup(ctx, nil, "Acme", "idea")
	require.NoError(t, err)

	require.NoError(t, store.PatchArtifact(ctx, s.ID, types.FieldBrainstormResult, json.RawMessage(`{"a":1}`)))
	require.NoError(t, store.PatchArtifact(ctx, s.ID, types.FieldMarketPulse, json.RawMessage(`{"b":2}`)))
	require.NoError(t, store.PatchArtifact(ctx, s.ID, types.FieldBrainstormResult, json.RawMessage(`{"a":3}`)))

	got, err := store.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":3}`, string(got.Artifacts[types.FieldBrainstormResult]))
	assert.JSONEq(t, `{"b":2}`, string(got.Artifacts[types.FieldMarketPulse]))
	assert.True(t, got.Has(types.FieldMarketPulse))
	assert.False(t, got.Has(types.FieldScorecard))
	assert.Equal(t, "Acme", got.Name)
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s, err := store.CreateStartup(ctx, nil, "Acme", "idea")
	require.NoError(t, err)

	got, err := store.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	got.Artifacts[types.FieldScorecard] = json.RawMessage(`{}`)

	again, err := store.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	assert.False(t, again.Has(types.FieldScorecard))
}

func TestMemoryStore_NotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	id := uuid.New()

	var nf *NotFoundError
	assert.ErrorAs(t, store.PatchArtifact(ctx, id, types.FieldScorecard, json.RawMessage(`{}`)), &nf)
	assert.ErrorAs(t, store.PatchEvaluationURL(ctx, id, types.FieldScorecard, "https://x"), &nf)
	assert.ErrorAs(t, store.DeleteStartup(ctx, id), &nf)
	assert.Equal(t, id, nf.ID)
}

func TestMemoryStore_ListFiltersByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	alice, bob := uuid.New(), uuid.New()

	_, err := store.CreateStartup(ctx, &alice, "A1", "idea")
	require.NoError(t, err)
	_, err = store.CreateStartup(ctx, &alice, "A2", "idea")
	require.NoError(t, err)
	_, err = store.CreateStartup(ctx, &bob, "B1", "idea")
	require.NoError(t, err)

	all, err := store.ListStartups(ctx, StartupFilters{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := store.ListStartups(ctx, StartupFilters{UserID: &alice})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	limited, err := store.ListStartups(ctx, StartupFilters{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestMemoryStore_EvaluationURLAndDelete(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s, err := store.CreateStartup(ctx, nil, "Acme", "idea")
	require.NoError(t, err)

	require.NoError(t, store.PatchEvaluationURL(ctx, s.ID, types.FieldScorecard, "https://eval/1"))
	got, err := store.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://eval/1", got.EvaluationURLs[types.FieldScorecard])

	require.NoError(t, store.DeleteStartup(ctx, s.ID))
	got, err = store.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore_PatchArtifactClearsEvaluationURL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	s, err := store.CreateStartup(ctx, nil, "Acme", "idea")
	require.NoError(t, err)

	require.NoError(t, store.PatchArtifact(ctx, s.ID, types.FieldScorecard, json.RawMessage(`{"v":1}`)))
	require.NoError(t, store.PatchEvaluationURL(ctx, s.ID, types.FieldScorecard, "https://eval/1"))
	require.NoError(t, store.PatchEvaluationURL(ctx, s.ID, types.FieldPitchDeck, "https://eval/2"))
	require.NoError(t, store.PatchArtifact(ctx, s.ID, types.FieldScorecard, json.RawMessage(`{"v":2}`)))

	got, err := store.GetStartup(ctx, s.ID)
	require.NoError(t, err)
	assert.NotContains(t, got.EvaluationURLs, types.FieldScorecard)
	assert.Equal(t, "https://eval/2", got.EvaluationURLs[types.FieldPitchDeck])
}

func TestMemoryStore_KeyState(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	ok, err := store.CompareAndSwapKeyIndex(ctx, "gemini", 0, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	idx, err := store.GetKeyIndex(ctx, "gemini")
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
}

func TestStartup_Fields(t *testing.T) {
	s := &Startup{Artifacts: map[types.Field]json.RawMessage{
		types.FieldBrainstormResult: json.RawMessage(`{}`),
		types.FieldMarketPulse:      json.RawMessage(`null`),
	}}
	assert.Equal(t, []types.Field{types.FieldBrainstormResult}, s.Fields())
}
