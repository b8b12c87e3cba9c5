// Package pipeline runs launch tasks against startup records: one task at a
// time through the Orchestrator, or the whole catalog through the Runner.
package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/db"
	"github.com/jonathan/launch-orchestrator/internal/evaluation"
	"github.com/jonathan/launch-orchestrator/internal/generation"
	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// Task statuses
const (
	StatusCompleted = "completed"
	StatusSkipped   = "skipped"
	StatusFailed    = "failed"
)

// EvaluationProject is the project name sent with evaluation requests
const EvaluationProject = "launch-orchestrator"

// RecordStore is the part of the record store the orchestrator needs
type RecordStore interface {
	GetStartup(ctx context.Context, id uuid.UUID) (*db.Startup, error)
	PatchArtifact(ctx context.Context, id uuid.UUID, field types.Field, content json.RawMessage) error
	PatchEvaluationURL(ctx context.Context, id uuid.UUID, field types.Field, url string) error
}

// Notifier triggers the evaluation side effect. It must not fail the task.
type Notifier interface {
	Notify(ctx context.Context, req evaluation.Request) string
}

// RunTaskOptions holds per-call options for RunTask
type RunTaskOptions struct {
	// Force regenerates the output even when it is already present.
	Force bool
	// CallerID, when set, must match the startup owner.
	CallerID *uuid.UUID
}

// TaskResult is the outcome of a successful RunTask call
type TaskResult struct {
	Task          steps.TaskID  `json:"task"`
	Field         types.Field   `json:"field"`
	Status        string        `json:"status"`
	Artifact      any           `json:"artifact,omitempty"`
	EvaluationURL string        `json:"evaluation_url,omitempty"`
	Duration      time.Duration `json:"duration_ns"`
}

// Orchestrator executes single tasks for single startups
type Orchestrator struct {
	store     RecordStore
	registry  *steps.Registry
	generator *generation.Generator
	notifier  Notifier
	logger    *zap.SugaredLogger
}

// NewOrchestrator creates an orchestrator. A nil registry uses the production
// catalog and a nil notifier disables evaluation.
func NewOrchestrator(store RecordStore, registry *steps.Registry, generator *generation.Generator, notifier Notifier, logger *zap.SugaredLogger) *Orchestrator {
	if registry == nil {
		registry = steps.Default()
	}
	logger = observability.OrNop(logger)
	if notifier == nil {
		notifier = evaluation.BestEffort(evaluation.Noop{}, logger, 0)
	}
	return &Orchestrator{
		store:     store,
		registry:  registry,
		generator: generator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Registry returns the task catalog the orchestrator dispatches on
func (o *Orchestrator) Registry() *steps.Registry {
	return o.registry
}

// RunTask executes one task for one startup: load the record, resolve the
// task, skip if the output exists (unless forced), check prerequisites,
// generate, persist, then evaluate on a best-effort basis.
func (o *Orchestrator) RunTask(ctx context.Context, startupID uuid.UUID, taskID steps.TaskID, opts RunTaskOptions) (*TaskResult, error) {
	startup, err := o.store.GetStartup(ctx, startupID)
	if err != nil {
		return nil, fmt.Errorf("failed to load startup %s: %w", startupID, err)
	}
	if startup == nil {
		return nil, &RecordNotFoundError{StartupID: startupID}
	}
	if opts.CallerID != nil && (startup.UserID == nil || *startup.UserID != *opts.CallerID) {
		return nil, &ForbiddenError{StartupID: startupID}
	}

	def, err := o.registry.Lookup(taskID)
	if err != nil {
		return nil, err
	}

	log := o.logger.With("startup_id", startupID, "task", def.ID)

	if !opts.Force && startup.Has(def.Output) {
		observability.TasksTotal.WithLabelValues(def.ID.String(), StatusSkipped).Inc()
		log.Debugw("task output already present, skipping")
		return &TaskResult{
			Task:     def.ID,
			Field:    def.Output,
			Status:   StatusSkipped,
			Artifact: startup.Artifacts[def.Output],
		}, nil
	}

	if missing := missingPrerequisites(def, startup); len(missing) > 0 {
		observability.TasksTotal.WithLabelValues(def.ID.String(), StatusFailed).Inc()
		return nil, &PrerequisitesNotMetError{Task: def.ID, Missing: missing}
	}

	inputs, err := buildInputs(def, startup)
	if err != nil {
		observability.TasksTotal.WithLabelValues(def.ID.String(), StatusFailed).Inc()
		return nil, &GenerationFailedError{Task: def.ID, Cause: err}
	}

	start := time.Now()
	log.Infow("generating artifact", "force", opts.Force)
	artifact, err := def.Generate(ctx, o.generator, inputs)
	if err != nil {
		observability.TasksTotal.WithLabelValues(def.ID.String(), StatusFailed).Inc()
		log.Warnw("generation failed", "error", err)
		return nil, &GenerationFailedError{Task: def.ID, Cause: err}
	}
	elapsed := time.Since(start)

	// a cancelled caller must not see a write land after it gave up
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := json.Marshal(artifact)
	if err != nil {
		observability.TasksTotal.WithLabelValues(def.ID.String(), StatusFailed).Inc()
		return nil, &GenerationFailedError{Task: def.ID, Cause: fmt.Errorf("failed to serialize artifact: %w", err)}
	}
	if err := o.store.PatchArtifact(ctx, startupID, def.Output, content); err != nil {
		var notFound *db.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &RecordNotFoundError{StartupID: startupID}
		}
		return nil, fmt.Errorf("failed to persist %s: %w", def.Output, err)
	}

	observability.TasksTotal.WithLabelValues(def.ID.String(), StatusCompleted).Inc()
	observability.TaskDuration.WithLabelValues(def.ID.String()).Observe(elapsed.Seconds())
	log.Infow("artifact persisted", "field", def.Output, "duration", elapsed)

	result := &TaskResult{
		Task:     def.ID,
		Field:    def.Output,
		Status:   StatusCompleted,
		Artifact: artifact,
		Duration: elapsed,
	}
	result.EvaluationURL = o.evaluate(ctx, log, startupID, def, artifact)
	return result, nil
}

// evaluate runs the side effect and records its URL. Nothing here fails the task.
func (o *Orchestrator) evaluate(ctx context.Context, log *zap.SugaredLogger, startupID uuid.UUID, def *steps.Definition, artifact any) string {
	url := o.notifier.Notify(ctx, evaluation.Request{
		Project:   EvaluationProject,
		StartupID: startupID,
		Artifact:  def.Output,
		Payload:   artifact,
	})
	if url == "" {
		return ""
	}
	if err := o.store.PatchEvaluationURL(ctx, startupID, def.Output, url); err != nil {
		log.Warnw("failed to store evaluation url", "error", err)
		return ""
	}
	return url
}

func missingPrerequisites(def *steps.Definition, startup *db.Startup) []types.Field {
	var missing []types.Field
	for _, field := range def.Prerequisites {
		if !startup.Has(field) {
			missing = append(missing, field)
		}
	}
	return missing
}

// buildInputs decodes only the prerequisite fields into their typed variants.
func buildInputs(def *steps.Definition, startup *db.Startup) (generation.Inputs, error) {
	artifacts := make(map[types.Field]any, len(def.Prerequisites))
	for _, field := range def.Prerequisites {
		decoded, err := types.DecodeArtifact(field, startup.Artifacts[field])
		if err != nil {
			return generation.Inputs{}, fmt.Errorf("stored prerequisite %s is unreadable: %w", field, err)
		}
		artifacts[field] = decoded
	}
	return generation.Inputs{
		StartupName: startup.Name,
		Idea:        startup.Idea,
		Artifacts:   artifacts,
	}, nil
}
