package pipeline

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// RecordNotFoundError is returned when the startup record does not exist
type RecordNotFoundError struct {
	StartupID uuid.UUID
}

func (e *RecordNotFoundError) Error() string {
	return fmt.Sprintf("startup record not found: %s", e.StartupID)
}

// ForbiddenError is returned when the verified caller does not own the startup
type ForbiddenError struct {
	StartupID uuid.UUID
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("caller does not own startup %s", e.StartupID)
}

// PrerequisitesNotMetError lists the prerequisite fields absent from the record,
// in declared order
type PrerequisitesNotMetError struct {
	Task    steps.TaskID
	Missing []types.Field
}

func (e *PrerequisitesNotMetError) Error() string {
	return fmt.Sprintf("task %s is missing prerequisites: %s",
		e.Task, strings.Join(types.FieldNames(e.Missing), ", "))
}

// GenerationFailedError wraps a failure of the task's generation routine
type GenerationFailedError struct {
	Task  steps.TaskID
	Cause error
}

func (e *GenerationFailedError) Error() string {
	return fmt.Sprintf("generation failed for task %s: %v", e.Task, e.Cause)
}

func (e *GenerationFailedError) Unwrap() error {
	return e.Cause
}
