package llm

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with exponential backoff and
// jitter. Invalid responses get a single second chance; truncated or
// rejected requests are returned immediately.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	logger *slog.Logger
}

// WithRetry wraps p with retry logic. A nil logger uses slog.Default.
func WithRetry(p Provider, cfg RetryConfig, logger *slog.Logger) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RetryProvider{inner: p, config: cfg, logger: logger}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidRetried := false

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		switch policyFor(err) {
		case retryNever:
			return nil, err
		case retryOnce:
			if invalidRetried {
				return nil, err
			}
			invalidRetried = true
		}
		if attempt == r.config.MaxAttempts {
			break
		}

		wait := r.backoff(attempt, err)
		r.logger.Warn("retrying LLM request",
			"purpose", PurposeFrom(ctx),
			"model", r.inner.ModelID(),
			"attempt", attempt,
			"wait", wait,
			"error", err)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff computes the wait before the attempt after the given one.
// A rate limit's Retry-After wins when the provider sent one.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return min(rl.RetryAfter, r.config.MaxWait)
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	wait = math.Min(wait, float64(r.config.MaxWait))

	// ±20% jitter
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
