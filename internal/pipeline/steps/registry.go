// Package steps provides the task catalog for the launch pipeline: each task's
// prerequisites, output field, and generation routine.
package steps

import (
	"fmt"
	"strings"

	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// TaskID identifies a pipeline task. Production task ids equal their output field name.
type TaskID string

// String returns the task id.
func (id TaskID) String() string {
	return string(id)
}

// Task categories
const (
	CategoryIdeation    = "ideation"
	CategoryStrategy    = "strategy"
	CategoryResearch    = "research"
	CategoryCustomer    = "customer"
	CategoryProduct     = "product"
	CategoryEngineering = "engineering"
	CategoryLaunch      = "launch"
	CategoryGrowth      = "growth"
	CategoryOperations  = "operations"
	CategoryFundraising = "fundraising"
)

// Definition describes one task
type Definition struct {
	ID            TaskID
	Category      string
	Prerequisites []types.Field
	Output        types.Field
	Generate      generation.Routine
}

// UnknownTaskError is returned for task ids not in the registry
type UnknownTaskError struct {
	Task TaskID
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task: %s", e.Task)
}

// Registry is an ordered, validated task catalog
type Registry struct {
	defs  []Definition
	index map[TaskID]int
}

// NewRegistry builds a registry from definitions in pipeline order. Task ids and
// outputs must be unique, every output must be a known artifact field, and every
// prerequisite must be produced by an earlier task.
func NewRegistry(defs ...Definition) (*Registry, error) {
	r := &Registry{
		defs:  make([]Definition, 0, len(defs)),
		index: make(map[TaskID]int, len(defs)),
	}
	produced := make(map[types.Field]TaskID, len(defs))

	for i, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("task %d has no id", i)
		}
		if _, dup := r.index[def.ID]; dup {
			return nil, fmt.Errorf("duplicate task id: %s", def.ID)
		}
		if !types.IsKnownField(def.Output) {
			return nil, fmt.Errorf("task %s: %w", def.ID, &types.UnknownFieldError{Field: def.Output})
		}
		if owner, dup := produced[def.Output]; dup {
			return nil, fmt.Errorf("task %s: output %s already produced by %s", def.ID, def.Output, owner)
		}
		if def.Generate == nil {
			return nil, fmt.Errorf("task %s has no generation routine", def.ID)
		}
		for _, prereq := range def.Prerequisites {
			if _, ok := produced[prereq]; !ok {
				return nil, fmt.Errorf("task %s: prerequisite %s is not produced by an earlier task", def.ID, prereq)
			}
		}

		produced[def.Output] = def.ID
		r.index[def.ID] = i
		r.defs = append(r.defs, def)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on an invalid catalog
func MustRegistry(defs ...Definition) *Registry {
	r, err := NewRegistry(defs...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the definition for a task id
func (r *Registry) Lookup(id TaskID) (*Definition, error) {
	i, ok := r.index[id]
	if !ok {
		return nil, &UnknownTaskError{Task: id}
	}
	def := r.defs[i]
	return &def, nil
}

// InOrder returns all definitions in pipeline order
func (r *Registry) InOrder() []Definition {
	out := make([]Definition, len(r.defs))
	copy(out, r.defs)
	return out
}

// IndexOf returns the position of a task in pipeline order, or -1
func (r *Registry) IndexOf(id TaskID) int {
	if i, ok := r.index[id]; ok {
		return i
	}
	return -1
}

// Len returns the number of tasks
func (r *Registry) Len() int {
	return len(r.defs)
}

// IDs returns the task ids in pipeline order
func (r *Registry) IDs() []TaskID {
	ids := make([]TaskID, len(r.defs))
	for i, def := range r.defs {
		ids[i] = def.ID
	}
	return ids
}

// ParseTaskID normalizes user input (trims space, accepts kebab or snake case
// forms of the camelCase ids) and looks it up
func (r *Registry) ParseTaskID(s string) (TaskID, error) {
	s = strings.TrimSpace(s)
	if _, ok := r.index[TaskID(s)]; ok {
		return TaskID(s), nil
	}
	folded := strings.NewReplacer("-", "", "_", "").Replace(strings.ToLower(s))
	for _, def := range r.defs {
		if strings.ToLower(def.ID.String()) == folded {
			return def.ID, nil
		}
	}
	return "", &UnknownTaskError{Task: TaskID(s)}
}
