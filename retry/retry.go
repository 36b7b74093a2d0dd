// Package retry applies a fixed-delay retry budget to outbound calls. Every
// network round trip the bot makes (LLM generation, summarization APIs) goes
// through the same policy.
package retry

import (
	"context"
	"time"

	backoff "github.com/sethvargo/go-retry"

	"github.com/Orange-County-AI/clem/logging"
)

// Policy is a fixed-delay retry budget.
type Policy struct {
	MaxAttempts int
	Delay       time.Duration
	logger      *logging.Logger
}

// NewPolicy returns the default policy used for all outbound calls: three
// attempts, one second apart.
func NewPolicy(logger *logging.Logger) Policy {
	if logger == nil {
		logger = logging.Default()
	}
	return Policy{
		MaxAttempts: 3,
		Delay:       time.Second,
		logger:      logger,
	}
}

// Do runs fn until it succeeds or the attempt budget is exhausted. Any error
// from fn is treated as retryable.
func (p Policy) Do(ctx context.Context, name string, fn func(context.Context) error) error {
	logger := p.logger
	if logger == nil {
		logger = logging.Default()
	}
	b := backoff.WithMaxRetries(uint64(p.MaxAttempts-1), backoff.NewConstant(p.Delay))
	attempt := 0
	return backoff.Do(ctx, b, func(ctx context.Context) error {
		attempt++
		if err := fn(ctx); err != nil {
			logger.Warn("call failed, will retry", "call", name, "attempt", attempt, "error", err.Error())
			return backoff.RetryableError(err)
		}
		return nil
	})
}

// DoValue is Do for calls that produce a value.
func DoValue[T any](ctx context.Context, p Policy, name string, fn func(context.Context) (T, error)) (T, error) {
	var out T
	err := p.Do(ctx, name, func(ctx context.Context) error {
		var err error
		out, err = fn(ctx)
		return err
	})
	return out, err
}
