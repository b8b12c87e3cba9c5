package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/observability"
	"github.com/jonathan/launch-orchestrator/internal/pipeline/steps"
	"github.com/jonathan/launch-orchestrator/internal/types"
)

// TaskRunner executes one task. *Orchestrator implements it.
type TaskRunner interface {
	RunTask(ctx context.Context, startupID uuid.UUID, taskID steps.TaskID, opts RunTaskOptions) (*TaskResult, error)
}

// Progress is emitted before and after each task during a run
type Progress struct {
	Task     steps.TaskID `json:"task"`
	Category string       `json:"category"`
	Index    int          `json:"index"`
	Total    int          `json:"total"`
	Status   string       `json:"status"`
	Message  string       `json:"message"`
}

// StatusRunning marks the progress event emitted before a task starts
const StatusRunning = "running"

// ProgressCallback receives run progress
type ProgressCallback func(event Progress)

// RunnerOptions configures a pipeline run
type RunnerOptions struct {
	Force      bool
	CallerID   *uuid.UUID
	OnProgress ProgressCallback
}

// TaskOutcome is one line of a run report
type TaskOutcome struct {
	Task          steps.TaskID  `json:"task"`
	Field         types.Field   `json:"field"`
	Status        string        `json:"status"`
	Reason        string        `json:"reason,omitempty"`
	EvaluationURL string        `json:"evaluation_url,omitempty"`
	Duration      time.Duration `json:"duration_ns"`
}

// Report summarizes a pipeline run
type Report struct {
	StartupID uuid.UUID     `json:"startup_id"`
	Outcomes  []TaskOutcome `json:"outcomes"`
	Completed int           `json:"completed"`
	Skipped   int           `json:"skipped"`
	Failed    int           `json:"failed"`
	Duration  time.Duration `json:"duration_ns"`
}

func (r *Report) add(o TaskOutcome) {
	r.Outcomes = append(r.Outcomes, o)
	switch o.Status {
	case StatusCompleted:
		r.Completed++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// Runner walks the task catalog in order for one startup
type Runner struct {
	tasks    TaskRunner
	registry *steps.Registry
	logger   *zap.SugaredLogger
}

// NewRunner creates a runner over the given task runner and catalog.
func NewRunner(tasks TaskRunner, registry *steps.Registry, logger *zap.SugaredLogger) *Runner {
	if registry == nil {
		registry = steps.Default()
	}
	return &Runner{
		tasks:    tasks,
		registry: registry,
		logger:   observability.OrNop(logger),
	}
}

// Run executes every task in catalog order. A failed task is recorded and the
// run moves on; only context cancellation, a missing record, or a forbidden
// caller stop it early. The partial report is returned alongside that error.
func (r *Runner) Run(ctx context.Context, startupID uuid.UUID, opts RunnerOptions) (*Report, error) {
	start := time.Now()
	report := &Report{StartupID: startupID}
	defs := r.registry.InOrder()
	total := len(defs)

	emit := func(p Progress) {
		if opts.OnProgress != nil {
			opts.OnProgress(p)
		}
	}

	for i, def := range defs {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(start)
			return report, err
		}

		emit(Progress{
			Task:     def.ID,
			Category: def.Category,
			Index:    i,
			Total:    total,
			Status:   StatusRunning,
			Message:  fmt.Sprintf("Task %d/%d: %s", i+1, total, def.ID),
		})

		result, err := r.tasks.RunTask(ctx, startupID, def.ID, RunTaskOptions{
			Force:    opts.Force,
			CallerID: opts.CallerID,
		})

		outcome := TaskOutcome{Task: def.ID, Field: def.Output}
		if err != nil {
			if fatal(ctx, err) {
				report.Duration = time.Since(start)
				return report, err
			}
			outcome.Status = StatusFailed
			outcome.Reason = Reason(err)
			r.logger.Warnw("task failed, continuing", "startup_id", startupID, "task", def.ID, "error", err)
		} else {
			outcome.Status = result.Status
			outcome.EvaluationURL = result.EvaluationURL
			outcome.Duration = result.Duration
		}
		report.add(outcome)

		emit(Progress{
			Task:     def.ID,
			Category: def.Category,
			Index:    i,
			Total:    total,
			Status:   outcome.Status,
			Message:  progressMessage(outcome),
		})
	}

	report.Duration = time.Since(start)
	r.logger.Infow("pipeline run finished",
		"startup_id", startupID,
		"completed", report.Completed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

// fatal reports errors that would repeat for every remaining task.
func fatal(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return true
	}
	var notFound *RecordNotFoundError
	var forbidden *ForbiddenError
	return errors.As(err, &notFound) || errors.As(err, &forbidden)
}

// Reason renders a task failure for reports and progress lines.
func Reason(err error) string {
	var prereq *PrerequisitesNotMetError
	if errors.As(err, &prereq) {
		return "missing prerequisites: " + strings.Join(types.FieldNames(prereq.Missing), ", ")
	}
	var unknown *steps.UnknownTaskError
	if errors.As(err, &unknown) {
		return unknown.Error()
	}
	return err.Error()
}

func progressMessage(o TaskOutcome) string {
	switch o.Status {
	case StatusCompleted:
		return fmt.Sprintf("%s generated in %s", o.Field, o.Duration.Round(time.Millisecond))
	case StatusSkipped:
		return fmt.Sprintf("%s already present", o.Field)
	default:
		return fmt.Sprintf("%s failed: %s", o.Task, o.Reason)
	}
}
