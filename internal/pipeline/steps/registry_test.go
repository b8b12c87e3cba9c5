package steps

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

func noop(context.Context, *generation.Generator, generation.Inputs) (any, error) {
	return nil, nil
}

func TestDefault_CoversEveryField(t *testing.T) {
	r := Default()
	require.Equal(t, len(types.AllFields), r.Len())

	for i, def := range r.InOrder() {
		assert.Equal(t, types.AllFields[i], def.Output, "task %d", i)
		assert.Equal(t, TaskID(def.Output), def.ID)
		assert.NotEmpty(t, def.Category)
		assert.NotNil(t, def.Generate)
	}
}

func TestDefault_BusinessPlanPrerequisites(t *testing.T) {
	def, err := Default().Lookup("businessPlan")
	require.NoError(t, err)
	assert.Equal(t, []types.Field{
		types.FieldBrainstormResult,
		types.FieldMarketPulse,
		types.FieldMissionVision,
		types.FieldBrandIdentity,
	}, def.Prerequisites)
	assert.Equal(t, types.FieldBusinessPlan, def.Output)
	assert.Equal(t, CategoryStrategy, def.Category)
}

func TestDefault_FirstTaskHasNoPrerequisites(t *testing.T) {
	first := Default().InOrder()[0]
	assert.Equal(t, TaskID("brainstormResult"), first.ID)
	assert.Empty(t, first.Prerequisites)
}

func TestLookup_UnknownTask(t *testing.T) {
	_, err := Default().Lookup("launchRocket")
	var unknown *UnknownTaskError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, TaskID("launchRocket"), unknown.Task)
	assert.Contains(t, err.Error(), "unknown task")
}

func TestLookup_ReturnsCopy(t *testing.T) {
	r := Default()
	def, err := r.Lookup("pitchDeck")
	require.NoError(t, err)
	def.Prerequisites = nil
	def.Category = "changed"

	again, err := r.Lookup("pitchDeck")
	require.NoError(t, err)
	assert.Equal(t, CategoryFundraising, again.Category)
}

func TestIndexOf(t *testing.T) {
	r := Default()
	assert.Equal(t, 0, r.IndexOf("brainstormResult"))
	assert.Equal(t, 5, r.IndexOf("businessPlan"))
	assert.Equal(t, r.Len()-1, r.IndexOf("pitchCoachAnalysis"))
	assert.Equal(t, -1, r.IndexOf("nope"))
	assert.Len(t, r.IDs(), r.Len())
}

func TestNewRegistry_Validation(t *testing.T) {
	tests := []struct {
		name string
		defs []Definition
		want string
	}{
		{
			name: "missing id",
			defs: []Definition{{Output: types.FieldBrainstormResult, Generate: noop}},
			want: "has no id",
		},
		{
			name: "duplicate id",
			defs: []Definition{
				{ID: "a", Output: types.FieldBrainstormResult, Generate: noop},
				{ID: "a", Output: types.FieldMarketPulse, Generate: noop},
			},
			want: "duplicate task id",
		},
		{
			name: "unknown output",
			defs: []Definition{{ID: "a", Output: "nothing", Generate: noop}},
			want: "unknown artifact field",
		},
		{
			name: "duplicate output",
			defs: []Definition{
				{ID: "a", Output: types.FieldBrainstormResult, Generate: noop},
				{ID: "b", Output: types.FieldBrainstormResult, Generate: noop},
			},
			want: "already produced",
		},
		{
			name: "no routine",
			defs: []Definition{{ID: "a", Output: types.FieldBrainstormResult}},
			want: "no generation routine",
		},
		{
			name: "prerequisite produced later",
			defs: []Definition{
				{ID: "a", Output: types.FieldMarketPulse, Generate: noop, Prerequisites: []types.Field{types.FieldBrainstormResult}},
				{ID: "b", Output: types.FieldBrainstormResult, Generate: noop},
			},
			want: "not produced by an earlier task",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.defs...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestMustRegistry_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustRegistry(Definition{ID: "a", Output: "nothing", Generate: noop})
	})
}

func TestParseTaskID(t *testing.T) {
	r := Default()

	for input, want := range map[string]TaskID{
		"businessPlan":            "businessPlan",
		"  pitchDeck ":            "pitchDeck",
		"business-plan":           "businessPlan",
		"due_diligence_checklist": "dueDiligenceChecklist",
		"SEOSTRATEGY":             "seoStrategy",
	} {
		got, err := r.ParseTaskID(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got)
	}

	_, err := r.ParseTaskID("nope")
	var unknown *UnknownTaskError
	assert.ErrorAs(t, err, &unknown)
}
