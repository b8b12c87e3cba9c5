package evaluation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/observability"
)

// DefaultTimeout bounds a single evaluation attempt
const DefaultTimeout = 30 * time.Second

// Notifier runs an evaluator without letting its failures escape.
type Notifier struct {
	evaluator Evaluator
	logger    *zap.SugaredLogger
	timeout   time.Duration
}

// BestEffort wraps an evaluator. A nil evaluator behaves like Noop and a
// non-positive timeout falls back to DefaultTimeout.
func BestEffort(evaluator Evaluator, logger *zap.SugaredLogger, timeout time.Duration) *Notifier {
	if evaluator == nil {
		evaluator = Noop{}
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Notifier{
		evaluator: evaluator,
		logger:    observability.OrNop(logger),
		timeout:   timeout,
	}
}

// Notify evaluates the artifact and returns its URL, or "" when the evaluator
// fails, panics, or has nothing to report.
func (n *Notifier) Notify(ctx context.Context, req Request) (url string) {
	if n == nil {
		return ""
	}
	ctx, cancel := context.WithTimeout(ctx, n.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			n.logger.Errorw("evaluation panicked",
				"startup_id", req.StartupID,
				"artifact", req.Artifact,
				"panic", fmt.Sprint(r),
			)
			observability.Evaluations.WithLabelValues(observability.OutcomeError).Inc()
			url = ""
		}
	}()

	url, err := n.evaluator.Evaluate(ctx, req)
	if err != nil {
		n.logger.Warnw("evaluation failed",
			"startup_id", req.StartupID,
			"artifact", req.Artifact,
			"error", err,
		)
		observability.Evaluations.WithLabelValues(observability.OutcomeError).Inc()
		return ""
	}
	if url != "" {
		observability.Evaluations.WithLabelValues(observability.OutcomeSuccess).Inc()
	}
	return url
}
