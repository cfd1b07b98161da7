package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// RetryProvider retries transient failures with jittered exponential
// backoff. Rate limits and outages are retried up to MaxAttempts and a
// reply that fails its schema is retried once. Anything else is returned
// at once.
type RetryProvider struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps p. A config with MaxAttempts below 2 returns p unchanged.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 2 {
		return p
	}
	return &RetryProvider{inner: p, cfg: cfg}
}

func (r *RetryProvider) Name() string  { return r.inner.Name() }
func (r *RetryProvider) Model() string { return r.inner.Model() }

func (r *RetryProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	invalidSeen := false
	var err error
	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		var c *Completion
		c, err = r.inner.Complete(ctx, pr)
		if err == nil {
			return c, nil
		}

		var invalid *InvalidOutputError
		if errors.As(err, &invalid) {
			if invalidSeen {
				return nil, err
			}
			invalidSeen = true
		} else if !transient(err) {
			return nil, err
		}

		if attempt == r.cfg.MaxAttempts-1 {
			break
		}
		t := time.NewTimer(r.delay(attempt, err))
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
	return nil, err
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var (
		rejected  *RejectedError
		truncated *TruncatedError
	)
	if errors.As(err, &rejected) || errors.As(err, &truncated) || errors.Is(err, errNoSchema) {
		return false
	}
	return true
}

// delay honours a server-supplied Retry-After, otherwise grows by
// Multiplier per attempt up to MaxWait, with ±20% jitter.
func (r *RetryProvider) delay(attempt int, err error) time.Duration {
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.cfg.InitialWait)
	for range attempt {
		d *= r.cfg.Multiplier
	}
	if ceil := float64(r.cfg.MaxWait); ceil > 0 && d > ceil {
		d = ceil
	}
	d *= 0.8 + 0.4*rand.Float64()
	return time.Duration(d)
}
