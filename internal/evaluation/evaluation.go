// Package evaluation submits generated artifacts to an external scoring
// service and returns a link to the resulting evaluation.
package evaluation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/launch-orchestrator/internal/types"
)

// Request describes one artifact to evaluate
type Request struct {
	Project   string      `json:"project"`
	StartupID uuid.UUID   `json:"startup_id"`
	Artifact  types.Field `json:"artifact"`
	Payload   any         `json:"payload"`
}

// Evaluator submits an artifact and returns the evaluation URL
type Evaluator interface {
	Evaluate(ctx context.Context, req Request) (string, error)
}

// Noop is used when no scoring service is configured
type Noop struct{}

// Evaluate returns an empty URL.
func (Noop) Evaluate(context.Context, Request) (string, error) {
	return "", nil
}

// ServiceError reports a non-2xx answer from the scoring service
type ServiceError struct {
	StatusCode int
	Body       string
}

func (e *ServiceError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("evaluation service returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("evaluation service returned status %d: %s", e.StatusCode, e.Body)
}
