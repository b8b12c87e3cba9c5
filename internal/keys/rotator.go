package keys

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/launch-orchestrator/internal/observability"
)

// Pool is the ordered list of API keys for one provider service.
type Pool struct {
	Service string
	Keys    []string
}

// Size returns the number of keys in the pool.
func (p Pool) Size() int {
	return len(p.Keys)
}

// Rotator calls provider operations with the current key of a pool and
// advances the persisted index on rate-limit failures.
type Rotator struct {
	state  StateStore
	logger *zap.SugaredLogger
}

// NewRotator creates a Rotator backed by the given state store.
func NewRotator(state StateStore, logger *zap.SugaredLogger) *Rotator {
	if state == nil {
		state = NewMemoryState()
	}
	return &Rotator{
		state:  state,
		logger: observability.OrNop(logger),
	}
}

// CurrentIndex returns the persisted key index for a service, reduced modulo the pool size.
func (r *Rotator) CurrentIndex(ctx context.Context, pool Pool) (int, error) {
	if pool.Size() == 0 {
		return 0, &NoKeysConfiguredError{Service: pool.Service}
	}
	idx, err := r.state.GetKeyIndex(ctx, pool.Service)
	if err != nil {
		return 0, fmt.Errorf("failed to read key index for %s: %w", pool.Service, err)
	}
	return normalize(idx, pool.Size()), nil
}

// Call runs op with rotation and discards its result.
func (r *Rotator) Call(ctx context.Context, pool Pool, op func(ctx context.Context, key string) error) error {
	_, err := Do(ctx, r, pool, func(ctx context.Context, key string) (struct{}, error) {
		return struct{}{}, op(ctx, key)
	})
	return err
}

// Do runs op starting with the pool's current key. Rate-limited attempts advance
// the persisted index and retry with the next untried key; any other error is
// returned as is. At most pool.Size() calls are made.
func Do[T any](ctx context.Context, r *Rotator, pool Pool, op func(ctx context.Context, key string) (T, error)) (T, error) {
	var zero T

	n := pool.Size()
	if n == 0 {
		return zero, &NoKeysConfiguredError{Service: pool.Service}
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	observed, err := r.state.GetKeyIndex(ctx, pool.Service)
	if err != nil {
		return zero, fmt.Errorf("failed to read key index for %s: %w", pool.Service, err)
	}
	idx := normalize(observed, n)

	tried := make([]bool, n)
	attempts := 0
	var lastErr error

	for idx >= 0 {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		tried[idx] = true
		attempts++
		result, err := op(ctx, pool.Keys[idx])
		if err == nil {
			observability.ProviderCalls.WithLabelValues(pool.Service, observability.OutcomeSuccess).Inc()
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return zero, ctxErr
		}
		if !IsRateLimited(err) {
			observability.ProviderCalls.WithLabelValues(pool.Service, observability.OutcomeError).Inc()
			return zero, err
		}

		observability.ProviderCalls.WithLabelValues(pool.Service, observability.OutcomeRateLimited).Inc()
		lastErr = err

		observed, err = r.advance(ctx, pool.Service, observed, idx, n)
		if err != nil {
			return zero, err
		}
		idx = nextUntried(normalize(observed, n), tried)
	}

	return zero, &AllKeysExhaustedError{Service: pool.Service, Attempts: attempts, Last: lastErr}
}

// advance moves the persisted index past the rate-limited key if nobody else
// has moved it since it was observed, and returns the index now persisted.
func (r *Rotator) advance(ctx context.Context, service string, observed, failed, n int) (int, error) {
	next := (failed + 1) % n
	swapped, err := r.state.CompareAndSwapKeyIndex(ctx, service, observed, next)
	if err != nil {
		return 0, fmt.Errorf("failed to rotate key for %s: %w", service, err)
	}
	if swapped {
		observability.KeyRotations.WithLabelValues(service).Inc()
		r.logger.Infow("rotated API key", "service", service, "from", failed, "to", next)
		return next, nil
	}

	current, err := r.state.GetKeyIndex(ctx, service)
	if err != nil {
		return 0, fmt.Errorf("failed to read key index for %s: %w", service, err)
	}
	r.logger.Debugw("key already rotated by another caller", "service", service, "index", current)
	return current, nil
}

func normalize(idx, n int) int {
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}

// nextUntried returns the first index at or after start that has not been tried, or -1.
func nextUntried(start int, tried []bool) int {
	n := len(tried)
	for i := 0; i < n; i++ {
		j := (start + i) % n
		if !tried[j] {
			return j
		}
	}
	return -1
}
