package pipeline

import (
	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// TaskState is the board view of one task for one startup. Locked is the
// linear UI gate (previous task's output absent); Ready and Missing come from
// the task's real prerequisites. The two can disagree.
type TaskState struct {
	Task          steps.TaskID  `json:"task"`
	Category      string        `json:"category"`
	Field         types.Field   `json:"field"`
	Index         int           `json:"index"`
	Done          bool          `json:"done"`
	Locked        bool          `json:"locked"`
	Ready         bool          `json:"ready"`
	Missing       []types.Field `json:"missing,omitempty"`
	EvaluationURL string        `json:"evaluation_url,omitempty"`
}

// IsLocked reports whether the task at index is locked in the linear view:
// true iff the previous task's output is absent. The first task is never
// locked; out-of-range indexes are.
func IsLocked(registry *steps.Registry, startup *db.Startup, index int) bool {
	defs := registry.InOrder()
	if index < 0 || index >= len(defs) {
		return true
	}
	if index == 0 {
		return false
	}
	return !startup.Has(defs[index-1].Output)
}

// LockStates returns the board view of every task in catalog order.
func LockStates(registry *steps.Registry, startup *db.Startup) []TaskState {
	defs := registry.InOrder()
	states := make([]TaskState, len(defs))
	for i, def := range defs {
		missing := missingPrerequisites(&def, startup)
		states[i] = TaskState{
			Task:          def.ID,
			Category:      def.Category,
			Field:         def.Output,
			Index:         i,
			Done:          startup.Has(def.Output),
			Locked:        i > 0 && !startup.Has(defs[i-1].Output),
			Ready:         len(missing) == 0,
			Missing:       missing,
			EvaluationURL: startup.EvaluationURLs[def.Output],
		}
	}
	return states
}
