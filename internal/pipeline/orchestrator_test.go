package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/launch-orchestrator/internal/evaluation"
	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/keys"
	"github.com/jonathan/launch-orchestrator/internal/llm"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

func twoTaskRegistry(t *testing.T, first, second *countingRoutine) *steps.Registry {
	t.Helper()
	r, err := steps.NewRegistry(
		steps.Definition{ID: "brainstormResult", Category: steps.CategoryIdeation, Output: types.FieldBrainstormResult, Generate: first.routine},
		steps.Definition{ID: "missionVision", Category: steps.CategoryStrategy, Output: types.FieldMissionVision, Generate: second.routine,
			Prerequisites: []types.Field{types.FieldBrainstormResult}},
	)
	require.NoError(t, err)
	return r
}

func brainstormRoutine() *countingRoutine {
	return &countingRoutine{out: &types.BrainstormResult{Problem: "p", Solution: "s", TargetAudience: "a", Differentiators: []string{"d"}}}
}

func missionRoutine() *countingRoutine {
	return &countingRoutine{out: &types.MissionVision{Mission: "m", Vision: "v"}}
}

func TestRunTask_Idempotent(t *testing.T) {
	store := newCountingStore()
	first := brainstormRoutine()
	o := NewOrchestrator(store, twoTaskRegistry(t, first, missionRoutine()), nil, nil, nil)
	id := store.seed(nil, nil)

	res, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, types.FieldBrainstormResult, res.Field)

	res, err = o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusSkipped, res.Status)

	assert.Equal(t, 1, first.count())
	assert.Equal(t, int32(1), store.writes.Load())
	assert.JSONEq(t, `{"problem":"p","solution":"s","target_audience":"a","differentiators":["d"]}`,
		string(store.artifact(id, types.FieldBrainstormResult)))
}

func TestRunTask_ForceOverwrites(t *testing.T) {
	store := newCountingStore()
	first := brainstormRoutine()
	o := NewOrchestrator(store, twoTaskRegistry(t, first, missionRoutine()), nil, nil, nil)
	id := store.seed(nil, map[types.Field]string{types.FieldBrainstormResult: brainstormJSON})

	res, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Equal(t, 1, first.count())
	assert.Contains(t, string(store.artifact(id, types.FieldBrainstormResult)), `"problem":"p"`)
}

func TestRunTask_PrerequisitesNotMet(t *testing.T) {
	store := newCountingStore()
	second := missionRoutine()
	o := NewOrchestrator(store, twoTaskRegistry(t, brainstormRoutine(), second), nil, nil, nil)
	id := store.seed(nil, nil)

	for _, force := range []bool{false, true} {
		_, err := o.RunTask(context.Background(), id, "missionVision", RunTaskOptions{Force: force})
		var prereq *PrerequisitesNotMetError
		require.ErrorAs(t, err, &prereq)
		assert.Equal(t, steps.TaskID("missionVision"), prereq.Task)
		assert.Equal(t, []types.Field{types.FieldBrainstormResult}, prereq.Missing)
	}
	assert.Zero(t, second.count())
	assert.Zero(t, store.writes.Load())
}

func TestRunTask_PassesOnlyDecodedPrerequisites(t *testing.T) {
	store := newCountingStore()
	second := missionRoutine()
	o := NewOrchestrator(store, twoTaskRegistry(t, brainstormRoutine(), second), nil, nil, nil)
	id := store.seed(nil, map[types.Field]string{
		types.FieldBrainstormResult: brainstormJSON,
		types.FieldMarketPulse:      marketPulseJSON,
	})

	_, err := o.RunTask(context.Background(), id, "missionVision", RunTaskOptions{})
	require.NoError(t, err)
	require.Len(t, second.inputs, 1)

	in := second.inputs[0]
	assert.Equal(t, "Acme", in.StartupName)
	require.Len(t, in.Artifacts, 1)
	brainstorm, ok := in.Artifacts[types.FieldBrainstormResult].(*types.BrainstormResult)
	require.True(t, ok)
	assert.Equal(t, "food waste", brainstorm.Problem)
}

func TestRunTask_CorruptPrerequisite(t *testing.T) {
	store := newCountingStore()
	second := missionRoutine()
	o := NewOrchestrator(store, twoTaskRegistry(t, brainstormRoutine(), second), nil, nil, nil)
	id := store.seed(nil, map[types.Field]string{types.FieldBrainstormResult: `{"problem":""}`})

	_, err := o.RunTask(context.Background(), id, "missionVision", RunTaskOptions{})
	var genErr *GenerationFailedError
	require.ErrorAs(t, err, &genErr)
	var shapeErr *types.ShapeError
	assert.ErrorAs(t, err, &shapeErr)
	assert.Zero(t, second.count())
}

func TestRunTask_RecordNotFound(t *testing.T) {
	o := NewOrchestrator(newCountingStore(), nil, nil, nil, nil)
	missing := uuid.New()

	_, err := o.RunTask(context.Background(), missing, "brainstormResult", RunTaskOptions{})
	var notFound *RecordNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, missing, notFound.StartupID)
}

func TestRunTask_UnknownTask(t *testing.T) {
	store := newCountingStore()
	o := NewOrchestrator(store, nil, nil, nil, nil)
	id := store.seed(nil, nil)

	_, err := o.RunTask(context.Background(), id, "launchRocket", RunTaskOptions{})
	var unknown *steps.UnknownTaskError
	assert.ErrorAs(t, err, &unknown)
}

func TestRunTask_Forbidden(t *testing.T) {
	store := newCountingStore()
	first := brainstormRoutine()
	o := NewOrchestrator(store, twoTaskRegistry(t, first, missionRoutine()), nil, nil, nil)
	owner, stranger := uuid.New(), uuid.New()
	id := store.seed(&owner, nil)

	_, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{CallerID: &stranger})
	var forbidden *ForbiddenError
	require.ErrorAs(t, err, &forbidden)
	assert.Zero(t, first.count())

	_, err = o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{CallerID: &owner})
	assert.NoError(t, err)
}

func TestRunTask_GenerationFailureWritesNothing(t *testing.T) {
	store := newCountingStore()
	boom := errors.New("model refused")
	first := &countingRoutine{err: boom}
	o := NewOrchestrator(store, twoTaskRegistry(t, first, missionRoutine()), nil, nil, nil)
	id := store.seed(nil, nil)

	_, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{})
	var genErr *GenerationFailedError
	require.ErrorAs(t, err, &genErr)
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, store.writes.Load())
}

func TestRunTask_CancelledBeforePersistWritesNothing(t *testing.T) {
	store := newCountingStore()
	ctx, cancel := context.WithCancel(context.Background())
	registry, err := steps.NewRegistry(steps.Definition{
		ID:     "brainstormResult",
		Output: types.FieldBrainstormResult,
		Generate: func(context.Context, *generation.Generator, generation.Inputs) (any, error) {
			cancel()
			return &types.BrainstormResult{Problem: "p", Solution: "s", TargetAudience: "a", Differentiators: []string{"d"}}, nil
		},
	})
	require.NoError(t, err)
	o := NewOrchestrator(store, registry, nil, nil, nil)
	id := store.seed(nil, nil)

	_, err = o.RunTask(ctx, id, "brainstormResult", RunTaskOptions{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.writes.Load())
	assert.Nil(t, store.artifact(id, types.FieldBrainstormResult))
}

func TestRunTask_EvaluationPanicDoesNotFailTask(t *testing.T) {
	store := newCountingStore()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core).Sugar()
	notifier := evaluation.BestEffort(evaluatorFunc(func(context.Context, evaluation.Request) (string, error) {
		panic("scorecard exploded")
	}), logger, 0)
	o := NewOrchestrator(store, twoTaskRegistry(t, brainstormRoutine(), missionRoutine()), nil, notifier, logger)
	id := store.seed(nil, nil)

	res, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Empty(t, res.EvaluationURL)
	assert.NotNil(t, store.artifact(id, types.FieldBrainstormResult))
	assert.Equal(t, 1, logs.FilterMessage("evaluation panicked").Len())
}

func TestRunTask_StoresEvaluationURL(t *testing.T) {
	store := newCountingStore()
	var got evaluation.Request
	notifier := evaluation.BestEffort(evaluatorFunc(func(_ context.Context, req evaluation.Request) (string, error) {
		got = req
		return "https://scorecard.example/e/9", nil
	}), nil, 0)
	o := NewOrchestrator(store, twoTaskRegistry(t, brainstormRoutine(), missionRoutine()), nil, notifier, nil)
	id := store.seed(nil, nil)

	res, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{})
	require.NoError(t, err)
	assert.Equal(t, "https://scorecard.example/e/9", res.EvaluationURL)
	assert.Equal(t, id, got.StartupID)
	assert.Equal(t, types.FieldBrainstormResult, got.Artifact)
	assert.Equal(t, EvaluationProject, got.Project)

	startup, err := store.GetStartup(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "https://scorecard.example/e/9", startup.EvaluationURLs[types.FieldBrainstormResult])
}

func TestRunTask_ForcedRerunClearsStaleEvaluationURL(t *testing.T) {
	store := newCountingStore()
	fail := false
	notifier := evaluation.BestEffort(evaluatorFunc(func(context.Context, evaluation.Request) (string, error) {
		if fail {
			return "", errors.New("scorecard unavailable")
		}
		return "https://scorecard.example/e/old", nil
	}), nil, 0)
	o := NewOrchestrator(store, twoTaskRegistry(t, brainstormRoutine(), missionRoutine()), nil, notifier, nil)
	id := store.seed(nil, nil)
	ctx := context.Background()

	_, err := o.RunTask(ctx, id, "brainstormResult", RunTaskOptions{})
	require.NoError(t, err)

	fail = true
	res, err := o.RunTask(ctx, id, "brainstormResult", RunTaskOptions{Force: true})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	assert.Empty(t, res.EvaluationURL)

	startup, err := store.GetStartup(ctx, id)
	require.NoError(t, err)
	assert.NotContains(t, startup.EvaluationURLs, types.FieldBrainstormResult)
}

func TestRunTask_BusinessPlanWithProductionCatalog(t *testing.T) {
	store := newCountingStore()
	model := &fakeLLM{reply: businessPlanJSON}
	o := NewOrchestrator(store, steps.Default(), generation.NewGenerator(model, nil, nil, nil), nil, nil)

	id := store.seed(nil, map[types.Field]string{
		types.FieldBrainstormResult: brainstormJSON,
		types.FieldMarketPulse:      marketPulseJSON,
		types.FieldMissionVision:    missionJSON,
	})

	_, err := o.RunTask(context.Background(), id, "businessPlan", RunTaskOptions{})
	var prereq *PrerequisitesNotMetError
	require.ErrorAs(t, err, &prereq)
	assert.Equal(t, []types.Field{types.FieldBrandIdentity}, prereq.Missing)
	assert.Zero(t, model.calls())

	require.NoError(t, store.PatchArtifact(context.Background(), id, types.FieldBrandIdentity, []byte(brandJSON)))

	res, err := o.RunTask(context.Background(), id, "businessPlan", RunTaskOptions{})
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, res.Status)
	plan, ok := res.Artifact.(*types.BusinessPlan)
	require.True(t, ok)
	assert.Equal(t, "Drones for farms", plan.ExecutiveSummary)
	assert.Equal(t, 1, model.calls())
	assert.JSONEq(t, businessPlanJSON, string(store.artifact(id, types.FieldBusinessPlan)))
}

type rateLimitedClient struct{}

func (rateLimitedClient) GenerateContent(context.Context, string, llm.ModelTier) (string, error) {
	return "", &keys.RateLimitError{Service: llm.ServiceName}
}

func (rateLimitedClient) GenerateJSON(context.Context, string, llm.ModelTier) (string, error) {
	return "", &keys.RateLimitError{Service: llm.ServiceName}
}

func (rateLimitedClient) Close() error { return nil }

func TestRunTask_AllKeysExhausted(t *testing.T) {
	store := newCountingStore()
	client := llm.NewRotatingClient(
		keys.NewRotator(store, nil),
		keys.Pool{Service: llm.ServiceName, Keys: []string{"k1", "k2"}},
		func(context.Context, string) (llm.Client, error) { return rateLimitedClient{}, nil },
	)
	o := NewOrchestrator(store, nil, generation.NewGenerator(client, nil, nil, nil), nil, nil)
	id := store.seed(nil, nil)

	_, err := o.RunTask(context.Background(), id, "brainstormResult", RunTaskOptions{})
	var genErr *GenerationFailedError
	require.ErrorAs(t, err, &genErr)
	var exhausted *keys.AllKeysExhaustedError
	require.ErrorAs(t, err, &exhausted)
	assert.Equal(t, 2, exhausted.Attempts)
	assert.Zero(t, store.writes.Load())
}
