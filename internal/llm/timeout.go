package llm

import (
	"context"
	"time"
)

// TimeoutProvider bounds each Complete call, retries included.
type TimeoutProvider struct {
	inner   Provider
	timeout time.Duration
}

// WithTimeout wraps a Provider with a per-call deadline. A non-positive
// timeout returns p unchanged.
func WithTimeout(p Provider, timeout time.Duration) Provider {
	if timeout <= 0 {
		return p
	}
	return &TimeoutProvider{inner: p, timeout: timeout}
}

func (t *TimeoutProvider) Complete(ctx context.Context, pr Prompt) (*Completion, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Complete(ctx, pr)
}

func (t *TimeoutProvider) Name() string  { return t.inner.Name() }
func (t *TimeoutProvider) Model() string { return t.inner.Model() }
